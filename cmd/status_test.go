package cmd

import (
	"strings"
	"testing"
)

func TestShowStatus_NotRunning(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	showStatus()

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "No timer running") {
		t.Errorf("Expected idle message, got: %s", stdout.String())
	}
}

func TestShowStatus_Running(t *testing.T) {
	d, stdout, stderr := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	startTimer([]string{"deep", "work"})
	stdout.Reset()

	showStatus()

	if stderr.Len() > 0 {
		t.Errorf("Unexpected stderr output: %s", stderr.String())
	}
	output := stdout.String()
	for _, want := range []string{"Running: deep work", "Started:", "Elapsed:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output missing %q\nGot: %s", want, output)
		}
	}
}

func TestShowStatus_UntitledTimer(t *testing.T) {
	d, stdout, _ := testDeps(t)
	SetDeps(d)
	defer ResetDeps()

	startTimer(nil)
	stdout.Reset()

	showStatus()

	if !strings.Contains(stdout.String(), "Running: (untitled)") {
		t.Errorf("Expected untitled placeholder, got: %s", stdout.String())
	}
}
