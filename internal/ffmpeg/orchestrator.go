package ffmpeg

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/framefuse/framefuse/internal/config"
	flog "github.com/framefuse/framefuse/internal/log"
	"github.com/framefuse/framefuse/internal/planner"
)

// Orchestrator executes a combine plan against ffmpeg with a
// hardware→software fallback: at most two attempts, the second always in
// software mode with an otherwise identical command. A timeout counts as a
// failed attempt. The capability cache is injected so tests can pin a mode
// without probing real hardware.
type Orchestrator struct {
	cfg    *config.Config
	runner Runner
	caps   *CapabilityCache
	log    zerolog.Logger
}

// NewOrchestrator wires an orchestrator from its collaborators.
func NewOrchestrator(cfg *config.Config, runner Runner, caps *CapabilityCache) *Orchestrator {
	return &Orchestrator{
		cfg:    cfg,
		runner: runner,
		caps:   caps,
		log:    flog.WithComponent("encode"),
	}
}

// Execute runs the plan, falling back from a hardware mode to software on a
// nonzero exit or timeout. On terminal failure it returns an EncodeError
// carrying the last attempt's diagnostics; the caller owns removal of any
// partial output artifact.
func (o *Orchestrator) Execute(ctx context.Context, plan *planner.CombinePlan) error {
	mode := o.caps.Mode(ctx, o.runner)

	attempts := []config.AccelMode{mode}
	if mode != config.AccelNone {
		attempts = append(attempts, config.AccelNone)
	}

	var last ExecResult
	for i, m := range attempts {
		if i > 0 {
			o.log.Warn().
				Str("failed_mode", string(attempts[i-1])).
				Msg("hardware encoding failed, retrying with software")
		}

		args := Build(o.cfg, plan, m)
		o.log.Debug().Str("mode", string(m)).Str("cmd", strings.Join(args, " ")).Msg("invoking ffmpeg")

		last = o.runner.Run(ctx, args, o.cfg.EncodeTimeout)
		if last.Err == nil && !last.TimedOut {
			o.log.Info().Str("mode", string(m)).Msg("encoding completed")
			return nil
		}
	}

	return &EncodeError{
		Mode:     attempts[len(attempts)-1],
		TimedOut: last.TimedOut,
		Stderr:   last.Stderr,
		Err:      last.Err,
	}
}
