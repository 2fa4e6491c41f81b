package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLoopCap = 32767
	testFPS     = 30
)

func TestTransformChain_ScaleOnly(t *testing.T) {
	// 16:9 input into a 16:9 cell: aspects match, no loop requested.
	chain := TransformChain(video(1280, 720), Cell{Width: 960, Height: 540}, false, 5, testLoopCap, testFPS)

	require.Len(t, chain, 1)
	assert.Equal(t, ScaleStep{Width: 960, Height: 540, FPS: 30}, chain[0])
}

func TestTransformChain_LoopWhenShorter(t *testing.T) {
	short := video(1280, 720)
	short.Duration = 2.0

	chain := TransformChain(short, Cell{Width: 960, Height: 540}, true, 5, testLoopCap, testFPS)
	require.True(t, chain.NeedsLoop())
	assert.Equal(t, LoopStep{SizeCap: testLoopCap}, chain[0])

	// Scale is always last.
	_, isScale := chain[len(chain)-1].(ScaleStep)
	assert.True(t, isScale)
}

func TestTransformChain_NoLoopWhenLongEnough(t *testing.T) {
	chain := TransformChain(video(1280, 720), Cell{Width: 960, Height: 540}, true, 5, testLoopCap, testFPS)
	assert.False(t, chain.NeedsLoop())
}

func TestTransformChain_NoLoopWhenDisabled(t *testing.T) {
	short := video(1280, 720)
	short.Duration = 2.0

	chain := TransformChain(short, Cell{Width: 960, Height: 540}, false, 5, testLoopCap, testFPS)
	assert.False(t, chain.NeedsLoop())
}

func TestTransformChain_CropSkipWithinThreshold(t *testing.T) {
	// 1286x720 is aspect 1.786 against a 1.778 cell: difference under 0.01.
	chain := TransformChain(video(1286, 720), Cell{Width: 960, Height: 540}, false, 5, testLoopCap, testFPS)
	_, hasCrop := chain.Crop()
	assert.False(t, hasCrop)
}

func TestTransformChain_CropWiderInput(t *testing.T) {
	// 16:9 input into a half-landscape 960x1080 cell (aspect 8:9): the input
	// is relatively wider, so width is cropped to height*aspect, centered.
	chain := TransformChain(video(1280, 720), Cell{Width: 960, Height: 1080}, false, 5, testLoopCap, testFPS)

	crop, ok := chain.Crop()
	require.True(t, ok)
	assert.Equal(t, CropStep{Width: 640, Height: 720, X: 320, Y: 0}, crop)
}

func TestTransformChain_CropTallerInput(t *testing.T) {
	// 9:16 input into a 1080x960 cell (aspect 1.125): relatively taller, so
	// height is cropped to width/aspect, centered vertically.
	chain := TransformChain(video(1080, 1920), Cell{Width: 1080, Height: 960}, false, 5, testLoopCap, testFPS)

	crop, ok := chain.Crop()
	require.True(t, ok)
	assert.Equal(t, CropStep{Width: 1080, Height: 960, X: 0, Y: 480}, crop)
}

func TestTransformChain_CropAspectMatchesCell(t *testing.T) {
	cells := []Cell{
		{Width: 960, Height: 1080},
		{Width: 1080, Height: 960},
		{Width: 960, Height: 540},
	}
	inputs := []struct{ w, h int }{
		{1280, 720}, {1080, 1920}, {854, 480}, {1920, 1080}, {640, 640},
	}

	for _, cell := range cells {
		cellAspect := float64(cell.Width) / float64(cell.Height)
		for _, in := range inputs {
			chain := TransformChain(video(in.w, in.h), cell, false, 5, testLoopCap, testFPS)
			crop, ok := chain.Crop()
			if !ok {
				continue
			}

			// Crop aspect matches the cell to within the rounding error the
			// evenness constraint introduces (at most two pixels per axis).
			gotAspect := float64(crop.Width) / float64(crop.Height)
			assert.LessOrEqual(t, math.Abs(gotAspect-cellAspect), 6.0/float64(crop.Height))

			// Everything even, crop contained in the input.
			assert.Zero(t, crop.Width%2)
			assert.Zero(t, crop.Height%2)
			assert.Zero(t, crop.X%2)
			assert.Zero(t, crop.Y%2)
			assert.LessOrEqual(t, crop.X+crop.Width, in.w)
			assert.LessOrEqual(t, crop.Y+crop.Height, in.h)
		}
	}
}

func TestTransformChain_StepOrder(t *testing.T) {
	short := video(1280, 720)
	short.Duration = 1.0

	chain := TransformChain(short, Cell{Width: 960, Height: 1080}, true, 5, testLoopCap, testFPS)
	require.Len(t, chain, 3)

	_, isLoop := chain[0].(LoopStep)
	_, isCrop := chain[1].(CropStep)
	_, isScale := chain[2].(ScaleStep)
	assert.True(t, isLoop)
	assert.True(t, isCrop)
	assert.True(t, isScale)
}
