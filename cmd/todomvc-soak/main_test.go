package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/thesyncim/todomvc/pkg/todomvc"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", formatDuration(0))
	assert.Equal(t, "00:01:05", formatDuration(65*time.Second))
	assert.Equal(t, "25:00:01", formatDuration(25*time.Hour+time.Second+400*time.Millisecond))
}

func TestCheckMark(t *testing.T) {
	assert.Equal(t, "PASS", checkMark(true))
	assert.Equal(t, "FAIL", checkMark(false))
}

func TestCheckLimits(t *testing.T) {
	limits := soakLimits{HeapMB: 64, Nodes: 5000}

	assert.Empty(t, checkLimits(10, 200, limits))
	assert.Contains(t, checkLimits(80, 200, limits), "JS heap")
	assert.Contains(t, checkLimits(10, 6000, limits), "DOM node")
	assert.Empty(t, checkLimits(1e6, 1e6, soakLimits{}), "zero limits disable the checks")
}

func TestInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	assert.False(t, interrupted(ctx, nil))
	assert.False(t, interrupted(ctx, todomvc.ErrTodoNotFound))
	assert.True(t, interrupted(ctx, fmt.Errorf("todomvc: create %q: %w", "a", context.Canceled)))

	cancel()
	assert.False(t, interrupted(ctx, nil), "a finished cycle is not interrupted")
	assert.True(t, interrupted(ctx, errors.New("use of closed network connection")))
}

func TestPrintSummary_LimitsIndependentOfFailures(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, SoakResult{Cycles: 4, Failures: 1, Status: "FAIL"})

	out := buf.String()
	assert.Contains(t, out, "No failed cycles:    FAIL")
	assert.Contains(t, out, "Within page limits:  PASS")

	buf.Reset()
	printSummary(&buf, SoakResult{Cycles: 4, LimitExceeded: true, Status: "FAIL"})

	out = buf.String()
	assert.Contains(t, out, "No failed cycles:    PASS")
	assert.Contains(t, out, "Within page limits:  FAIL")
}
