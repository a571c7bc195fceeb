package cmd

import (
	"os"
	"testing"
)

func TestDefaultDeps(t *testing.T) {
	d := DefaultDeps()

	if d.Stdout != os.Stdout {
		t.Error("Expected Stdout to be os.Stdout")
	}
	if d.Stderr != os.Stderr {
		t.Error("Expected Stderr to be os.Stderr")
	}
	if d.Stdin != os.Stdin {
		t.Error("Expected Stdin to be os.Stdin")
	}
	if d.Exit == nil {
		t.Error("Expected Exit to be set")
	}
	if d.StorePath == nil {
		t.Error("Expected StorePath to be set")
	}
	if d.ConfigPath == nil {
		t.Error("Expected ConfigPath to be set")
	}
}

func TestSetAndResetDeps(t *testing.T) {
	custom, _, _ := testDeps(t)
	SetDeps(custom)
	if deps != custom {
		t.Error("SetDeps should replace the global deps")
	}

	ResetDeps()
	if deps == custom {
		t.Error("ResetDeps should restore the defaults")
	}
	if deps.Stdout != os.Stdout {
		t.Error("Expected Stdout to be os.Stdout after reset")
	}
}
