// Package loader reads onree configuration layers into nested maps.
//
// The TOML loader reads the user configuration file and the env loader
// maps ONREE_* variables onto the same dot paths. DeepMerge combines the
// layers.
package loader

import (
	"io/fs"
	"os"
)

// FileSystem is where the TOML loader finds config.toml. fstest.MapFS
// satisfies it.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS reads paths as given, absolute or relative to the working
// directory.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the file system Config uses unless WithFS is given.
func DefaultFS() FileSystem {
	return OSFS{}
}
