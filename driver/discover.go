package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Input is one path named on the command line together with the source
// files found for it.
type Input struct {
	Path  string
	Files []string
	Err   error
}

// ErrNotFound marks a path that is neither a file nor a directory.
type ErrNotFound struct {
	Path string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("Not a file or directory error: %s", e.Path)
}

// Discover resolves each path. A file is taken as is, whatever its
// extension; a directory is walked for files with one of the extensions.
// Files are sorted within each input.
func Discover(paths []string, hasExtension func(string) bool) []Input {
	inputs := make([]Input, 0, len(paths))
	for _, path := range paths {
		in := Input{Path: path}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			in.Err = &ErrNotFound{Path: path}
		case !info.IsDir():
			in.Files = []string{path}
		default:
			in.Files, in.Err = walkSources(path, hasExtension)
		}
		inputs = append(inputs, in)
	}
	return inputs
}

func walkSources(root string, hasExtension func(string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasExtension(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
