package modelfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase model file stems to filesystem paths, so scenes can
// refer to "dragon" instead of "assets/models/dragon.obj". When two
// directories hold the same stem, the directory given first wins.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

// BuildIndex scans dirs and their subdirectories for model files.
// Unreadable directories are skipped.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !Supported(path) {
				return nil
			}
			stem := stemOf(path)
			if _, exists := idx.entries[stem]; !exists {
				idx.entries[stem] = path
			}
			return nil
		})
	}
	return idx
}

// ResolvePath returns the file for a model reference. A reference naming
// an existing file is used as is; anything else is looked up by stem.
func (idx *Index) ResolvePath(ref string) (string, bool) {
	ref = strings.ReplaceAll(ref, "\\", "/")
	if Supported(ref) {
		if info, err := os.Stat(ref); err == nil && !info.IsDir() {
			return ref, true
		}
	}
	if idx == nil {
		return "", false
	}
	path, ok := idx.entries[stemOf(ref)]
	return path, ok
}

// Len returns the number of indexed model files.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
