// Package layout computes output geometry and per-input transform chains for
// the split-screen composition. Everything here is pure arithmetic over
// probed metadata; nothing touches a subprocess.
package layout

import (
	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/probe"
)

// Standard-frame canonical dimensions: a 16:9 landscape frame for the
// horizontal split, a 9:16 portrait frame for the vertical split. Each cell
// is exactly half the frame along the split axis.
const (
	stdLandscapeWidth  = 1920
	stdLandscapeHeight = 1080
	stdPortraitWidth   = 1080
	stdPortraitHeight  = 1920
)

// Cell is the sub-region of the output frame assigned to one input.
type Cell struct {
	Width  int
	Height int
}

// Geometry describes the target output frame and the cell each input must be
// shaped to fit. All dimensions are even (encoder constraint). For a
// horizontal orientation the cell widths sum to OutputWidth and both cells
// share OutputHeight; for vertical, the dual holds.
type Geometry struct {
	OutputWidth  int
	OutputHeight int
	Cells        [2]Cell
	Orientation  config.Layout
}

// Bounds caps the content-policy output size. When the summed dimension
// along the split axis exceeds the bound, everything is scaled down by a
// single uniform factor so native aspect ratios are preserved.
type Bounds struct {
	MaxWidth  int
	MaxHeight int
}

// ComputeGeometry derives the output geometry for two inputs under the given
// orientation and policy. Pure and total over valid (positive-dimension)
// metadata; calling it twice with identical inputs yields identical output.
func ComputeGeometry(v1, v2 *probe.VideoInfo, orientation config.Layout, policy config.LayoutPolicy, bounds Bounds) Geometry {
	if policy == config.PolicyStandard {
		return standardGeometry(orientation)
	}
	return contentGeometry(v1, v2, orientation, bounds)
}

// standardGeometry returns the fixed canonical frame, split in half along
// the orientation axis. Input sizes are irrelevant; mismatched aspect ratios
// are handled by cropping in the transform chain.
func standardGeometry(orientation config.Layout) Geometry {
	if orientation == config.LayoutVertical {
		cell := Cell{Width: stdPortraitWidth, Height: stdPortraitHeight / 2}
		return Geometry{
			OutputWidth:  stdPortraitWidth,
			OutputHeight: stdPortraitHeight,
			Cells:        [2]Cell{cell, cell},
			Orientation:  orientation,
		}
	}
	cell := Cell{Width: stdLandscapeWidth / 2, Height: stdLandscapeHeight}
	return Geometry{
		OutputWidth:  stdLandscapeWidth,
		OutputHeight: stdLandscapeHeight,
		Cells:        [2]Cell{cell, cell},
		Orientation:  orientation,
	}
}

// contentGeometry sums the inputs along the split axis and takes the max of
// the other dimension, then applies one uniform downscale factor if the
// summed dimension exceeds the bound. No cropping ever happens under this
// policy; each input keeps its native aspect ratio.
func contentGeometry(v1, v2 *probe.VideoInfo, orientation config.Layout, bounds Bounds) Geometry {
	scale := 1.0

	if orientation == config.LayoutVertical {
		maxWidth := max(v1.Width, v2.Width)
		totalHeight := v1.Height + v2.Height
		if totalHeight > bounds.MaxHeight {
			scale = float64(bounds.MaxHeight) / float64(totalHeight)
		}

		width := evenDown(int(float64(maxWidth) * scale))
		c1 := Cell{Width: width, Height: evenDown(int(float64(v1.Height) * scale))}
		c2 := Cell{Width: width, Height: evenDown(int(float64(v2.Height) * scale))}
		return Geometry{
			OutputWidth:  width,
			OutputHeight: c1.Height + c2.Height,
			Cells:        [2]Cell{c1, c2},
			Orientation:  orientation,
		}
	}

	totalWidth := v1.Width + v2.Width
	maxHeight := max(v1.Height, v2.Height)
	if totalWidth > bounds.MaxWidth {
		scale = float64(bounds.MaxWidth) / float64(totalWidth)
	}

	height := evenDown(int(float64(maxHeight) * scale))
	c1 := Cell{Width: evenDown(int(float64(v1.Width) * scale)), Height: height}
	c2 := Cell{Width: evenDown(int(float64(v2.Width) * scale)), Height: height}
	return Geometry{
		OutputWidth:  c1.Width + c2.Width,
		OutputHeight: height,
		Cells:        [2]Cell{c1, c2},
		Orientation:  orientation,
	}
}

// evenDown rounds an odd dimension down by one (H.264 requires even
// dimensions).
func evenDown(n int) int {
	return n - n%2
}
