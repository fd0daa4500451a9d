package watch

import (
	"io/fs"
	"maps"
	"path/filepath"
)

// Stamp is the metadata a scan records for one file. Two scans of an
// unchanged file produce the same stamp.
type Stamp struct {
	ModTime int64 // nanoseconds since the epoch
	Size    int64 // bytes
}

// Snapshot is a point-in-time fingerprint of a directory tree, mapping
// each regular file path beneath the root to its stamp.
type Snapshot map[string]Stamp

// Equal reports whether two snapshots cover the same files with the same
// stamps. Key order never matters.
func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s, other)
}

// Exclude names the directories and files a scan never visits. Excluded
// directories are pruned before descent, so nothing beneath them is
// stamped.
type Exclude struct {
	Dirs  map[string]struct{}
	Files map[string]struct{}
}

// DefaultExclude skips .git directories and .DS_Store files.
func DefaultExclude() Exclude {
	return Exclude{
		Dirs:  map[string]struct{}{".git": {}},
		Files: map[string]struct{}{".DS_Store": {}},
	}
}

// WithDirs returns a copy of e that also excludes the given directory names.
func (e Exclude) WithDirs(names ...string) Exclude {
	dirs := maps.Clone(e.Dirs)
	if dirs == nil {
		dirs = make(map[string]struct{}, len(names))
	}
	for _, name := range names {
		dirs[name] = struct{}{}
	}
	return Exclude{Dirs: dirs, Files: e.Files}
}

// WithFiles returns a copy of e that also excludes the given file names.
func (e Exclude) WithFiles(names ...string) Exclude {
	files := maps.Clone(e.Files)
	if files == nil {
		files = make(map[string]struct{}, len(names))
	}
	for _, name := range names {
		files[name] = struct{}{}
	}
	return Exclude{Dirs: e.Dirs, Files: files}
}

// Scan walks root and stamps every regular file beneath it. Files that
// vanish between the directory listing and the stat are omitted rather
// than failing the scan, so a snapshot taken while the tree is being
// written to is still usable.
func Scan(root string, exclude Exclude) Snapshot {
	snap := make(Snapshot)
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are treated the same as vanished ones.
			return nil
		}
		if d.IsDir() {
			if _, skip := exclude.Dirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, skip := exclude.Files[d.Name()]; skip {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		snap[path] = Stamp{ModTime: info.ModTime().UnixNano(), Size: info.Size()}
		return nil
	})
	return snap
}
