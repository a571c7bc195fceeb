package main

import (
	"errors"
	"os"
	"testing"

	"github.com/solvik/daybook/internal/osutil"
)

// mockPathProvider simulates path resolution failures
type mockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func TestRun_Success(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()
	os.Args = []string{"daybook"}

	code := run()
	if code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_StorePathFailure(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for store path failure, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()
	os.Args = []string{"daybook", "--unknownflag"}

	code := run()
	if code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	originalExit := exitFunc
	originalArgs := os.Args
	defer func() {
		exitFunc = originalExit
		os.Args = originalArgs
	}()

	var capturedCode int
	exitFunc = func(code int) {
		capturedCode = code
	}
	os.Args = []string{"daybook"}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
