package layout

import (
	"math"

	"github.com/framefuse/framefuse/internal/probe"
)

// aspectSkipThreshold is the aspect-ratio difference below which cropping is
// skipped. A near-match would produce a degenerate one-or-two-pixel crop;
// scaling alone is indistinguishable at that point.
const aspectSkipThreshold = 0.01

// Step is one node in a per-input transform chain. Chains are strictly
// ordered: optional [LoopStep], optional [CropStep], mandatory [ScaleStep].
type Step interface {
	step()
}

// LoopStep extends an input indefinitely; the encoder's output-duration cap
// truncates it downstream. SizeCap bounds the loop filter's frame buffer.
type LoopStep struct {
	SizeCap int
}

// CropStep is a centered crop to the target cell's aspect ratio. All four
// values are rounded down to even.
type CropStep struct {
	Width  int
	Height int
	X      int
	Y      int
}

// ScaleStep resizes to the assigned cell dimensions and normalizes to a
// constant frame rate.
type ScaleStep struct {
	Width  int
	Height int
	FPS    int
}

func (LoopStep) step()  {}
func (CropStep) step()  {}
func (ScaleStep) step() {}

// Chain is the ordered transform sequence for one input.
type Chain []Step

// NeedsLoop reports whether the chain begins with a loop step.
func (c Chain) NeedsLoop() bool {
	if len(c) == 0 {
		return false
	}
	_, ok := c[0].(LoopStep)
	return ok
}

// Crop returns the chain's crop step, if any.
func (c Chain) Crop() (CropStep, bool) {
	for _, s := range c {
		if crop, ok := s.(CropStep); ok {
			return crop, true
		}
	}
	return CropStep{}, false
}

// TransformChain builds the loop→crop→scale sequence shaping one input into
// its cell. A loop step is included iff looping is enabled and the input is
// shorter than the target duration. A crop step is included iff the input's
// aspect ratio differs from the cell's by at least the skip threshold.
func TransformChain(v *probe.VideoInfo, cell Cell, loopEnabled bool, targetDuration float64, loopCap, fps int) Chain {
	var chain Chain

	if loopEnabled && v.Duration < targetDuration {
		chain = append(chain, LoopStep{SizeCap: loopCap})
	}

	cellAspect := float64(cell.Width) / float64(cell.Height)
	if math.Abs(v.Aspect()-cellAspect) >= aspectSkipThreshold {
		chain = append(chain, centeredCrop(v, cellAspect))
	}

	chain = append(chain, ScaleStep{Width: cell.Width, Height: cell.Height, FPS: fps})
	return chain
}

// centeredCrop computes the crop matching the target aspect: a relatively
// wider input loses width (full height kept), a relatively taller input
// loses height (full width kept). Origin and size are rounded down to even.
func centeredCrop(v *probe.VideoInfo, targetAspect float64) CropStep {
	if v.Aspect() > targetAspect {
		w := evenDown(int(math.Round(float64(v.Height) * targetAspect)))
		return CropStep{
			Width:  w,
			Height: evenDown(v.Height),
			X:      evenDown((v.Width - w) / 2),
			Y:      0,
		}
	}
	h := evenDown(int(math.Round(float64(v.Width) / targetAspect)))
	return CropStep{
		Width:  evenDown(v.Width),
		Height: h,
		X:      0,
		Y:      evenDown((v.Height - h) / 2),
	}
}
