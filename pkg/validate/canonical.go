package validate

import (
	"os"
	"path/filepath"
)

// canonicalizeExistingPrefix resolves symlinks on the longest existing prefix
// of path and rejoins any trailing, not-yet-created components verbatim.
// This lets the workspace-path validator canonicalize a candidate directory
// that does not exist yet (the common case for `add`, which validates before
// creating anything).
func canonicalizeExistingPrefix(path string) (string, error) {
	dir := path
	var suffix []string

	for {
		if _, err := os.Lstat(dir); err == nil {
			break
		} else if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root without finding an existing path.
			break
		}
		suffix = append([]string{filepath.Base(dir)}, suffix...)
		dir = parent
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		// Nothing exists yet at all (e.g. the root itself is hypothetical);
		// fall back to the lexical path.
		resolved = dir
	}

	for _, s := range suffix {
		resolved = filepath.Join(resolved, s)
	}
	return resolved, nil
}
