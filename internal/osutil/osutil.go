// Package osutil seams the OS calls behind store and config path
// resolution so their failure paths stay testable.
package osutil

import "os"

// PathProvider is the surface GetStorePath and GetConfigPath need
// from the OS: locating the user config root and creating the daybook
// directory under it.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider forwards straight to the os package.
type DefaultPathProvider struct{}

func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is what path resolution goes through. Tests swap it to
// simulate an unset HOME or an unwritable config directory.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider replaces the active provider.
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider restores the real OS provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}
