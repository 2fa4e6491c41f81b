package planner

import (
	"fmt"
	"strings"

	"github.com/framefuse/framefuse/internal/config"
	"github.com/framefuse/framefuse/internal/layout"
)

// RenderFilterGraph renders both transform chains into a filter_complex
// expression. Each chain becomes a sequential filter stanza ending in a named
// intermediate stream; the two finals are combined by hstack or vstack into
// the named [output] stream.
//
// Stanza order within a chain is fixed (loop, crop, scale) and must not be
// altered: looping an already-cropped or scaled stream is a different
// operation and unsupported.
func RenderFilterGraph(chains [2]layout.Chain, orientation config.Layout) string {
	var filters []string

	src1 := renderChain(&filters, chains[0], 0)
	src2 := renderChain(&filters, chains[1], 1)

	stack := "hstack"
	if orientation == config.LayoutVertical {
		stack = "vstack"
	}
	filters = append(filters, fmt.Sprintf("%s%s%s=inputs=2[output]", src1, src2, stack))

	return strings.Join(filters, ";")
}

// renderChain appends the filter stanzas for one input chain and returns the
// name of its final stream. A loop step gets its own stanza so the looped
// stream is materialized before crop/scale run on it.
func renderChain(filters *[]string, chain layout.Chain, input int) string {
	src := fmt.Sprintf("[%d:v]", input)
	label := input + 1

	var ops []string
	for _, step := range chain {
		switch s := step.(type) {
		case layout.LoopStep:
			looped := fmt.Sprintf("[v%d_looped]", label)
			*filters = append(*filters, fmt.Sprintf("%sloop=loop=-1:size=%d:start=0%s", src, s.SizeCap, looped))
			src = looped
		case layout.CropStep:
			ops = append(ops, fmt.Sprintf("crop=%d:%d:%d:%d", s.Width, s.Height, s.X, s.Y))
		case layout.ScaleStep:
			ops = append(ops, fmt.Sprintf("scale=%d:%d:flags=fast_bilinear,fps=%d", s.Width, s.Height, s.FPS))
		}
	}

	final := fmt.Sprintf("[v%d_final]", label)
	*filters = append(*filters, src+strings.Join(ops, ",")+final)
	return final
}
