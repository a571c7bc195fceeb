package osutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// stubProvider lets each test script the two OS calls.
type stubProvider struct {
	configDir    string
	configDirErr error
	mkdirErr     error
}

func (s stubProvider) UserConfigDir() (string, error) {
	return s.configDir, s.configDirErr
}

func (s stubProvider) MkdirAll(path string, perm os.FileMode) error {
	return s.mkdirErr
}

func TestDefaultPathProvider(t *testing.T) {
	p := DefaultPathProvider{}

	dir, err := p.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir() returned unexpected error: %v", err)
	}
	if dir == "" {
		t.Error("UserConfigDir() returned an empty path")
	}

	appDir := filepath.Join(t.TempDir(), "daybook")
	if err := p.MkdirAll(appDir, 0755); err != nil {
		t.Fatalf("MkdirAll() returned unexpected error: %v", err)
	}
	info, err := os.Stat(appDir)
	if err != nil {
		t.Fatalf("Failed to stat created directory: %v", err)
	}
	if !info.IsDir() {
		t.Error("MkdirAll() did not create a directory")
	}
}

func TestSetAndResetProvider(t *testing.T) {
	t.Cleanup(ResetProvider)

	wantErr := errors.New("no home directory")
	SetProvider(stubProvider{configDirErr: wantErr})

	if _, err := Provider.UserConfigDir(); !errors.Is(err, wantErr) {
		t.Errorf("expected the stubbed error, got %v", err)
	}

	ResetProvider()
	if _, ok := Provider.(DefaultPathProvider); !ok {
		t.Errorf("expected DefaultPathProvider after reset, got %T", Provider)
	}
}
