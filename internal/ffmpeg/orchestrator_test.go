package ffmpeg

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framefuse/framefuse/internal/config"
)

// scriptRunner returns canned results in sequence and records every argv.
type scriptRunner struct {
	results []ExecResult
	calls   [][]string
}

func (s *scriptRunner) Run(_ context.Context, args []string, _ time.Duration) ExecResult {
	s.calls = append(s.calls, slices.Clone(args))
	if len(s.results) == 0 {
		return ExecResult{}
	}
	res := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return res
}

var errExit = errors.New("exit status 1")

func TestOrchestrator_FirstAttemptSucceeds(t *testing.T) {
	cfg := testCfg()
	runner := &scriptRunner{results: []ExecResult{{}}}
	orch := NewOrchestrator(cfg, runner, FixedCapability(config.AccelNVENC))

	err := orch.Execute(context.Background(), testPlan(t, cfg, true, true))
	require.NoError(t, err)

	// A successful first attempt never triggers a second.
	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "h264_nvenc")
}

func TestOrchestrator_HardwareFailureFallsBackToSoftware(t *testing.T) {
	cfg := testCfg()
	runner := &scriptRunner{results: []ExecResult{
		{Err: errExit, Stderr: "nvenc init failed"},
		{},
	}}
	orch := NewOrchestrator(cfg, runner, FixedCapability(config.AccelNVENC))

	err := orch.Execute(context.Background(), testPlan(t, cfg, true, true))
	require.NoError(t, err)

	require.Len(t, runner.calls, 2)
	assert.Contains(t, runner.calls[0], "h264_nvenc")
	assert.Contains(t, runner.calls[1], "libx264")
}

func TestOrchestrator_TwoFailuresAreTerminal(t *testing.T) {
	cfg := testCfg()
	runner := &scriptRunner{results: []ExecResult{
		{Err: errExit, Stderr: "hw broke"},
		{Err: errExit, Stderr: "sw broke too"},
	}}
	orch := NewOrchestrator(cfg, runner, FixedCapability(config.AccelQSV))

	err := orch.Execute(context.Background(), testPlan(t, cfg, true, true))
	require.Error(t, err)
	require.Len(t, runner.calls, 2)

	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, config.AccelNone, encErr.Mode)
	assert.Equal(t, "sw broke too", encErr.Stderr)
}

func TestOrchestrator_SoftwareModeGetsSingleAttempt(t *testing.T) {
	cfg := testCfg()
	runner := &scriptRunner{results: []ExecResult{{Err: errExit}}}
	orch := NewOrchestrator(cfg, runner, FixedCapability(config.AccelNone))

	err := orch.Execute(context.Background(), testPlan(t, cfg, true, true))
	require.Error(t, err)
	assert.Len(t, runner.calls, 1)
}

func TestOrchestrator_TimeoutTriggersFallback(t *testing.T) {
	cfg := testCfg()
	runner := &scriptRunner{results: []ExecResult{
		{Err: errExit, TimedOut: true},
		{},
	}}
	orch := NewOrchestrator(cfg, runner, FixedCapability(config.AccelVideoToolbox))

	err := orch.Execute(context.Background(), testPlan(t, cfg, true, true))
	require.NoError(t, err)
	assert.Len(t, runner.calls, 2)
}

func TestOrchestrator_TerminalTimeoutReported(t *testing.T) {
	cfg := testCfg()
	runner := &scriptRunner{results: []ExecResult{
		{Err: errExit, TimedOut: true},
	}}
	orch := NewOrchestrator(cfg, runner, FixedCapability(config.AccelNone))

	err := orch.Execute(context.Background(), testPlan(t, cfg, true, true))
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.True(t, encErr.TimedOut)
}
