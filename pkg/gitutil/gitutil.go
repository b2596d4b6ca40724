package gitutil

import (
	"os"
	"path/filepath"

	"github.com/tbb-tools/tbtools/pkg/logger"
)

var log = logger.New("gitutil:gitutil")

// FindSourceRoot walks up from dir to the first directory containing rel, a
// slash separated path. The walk stops at the top of the enclosing git
// checkout, so a tool run inside one tree never picks up a sibling tree.
// It reports false when no such directory exists.
func FindSourceRoot(dir, rel string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		log.Printf("Cannot make %s absolute: %v", dir, err)
		return "", false
	}
	rel = filepath.FromSlash(rel)

	for {
		if exists(filepath.Join(dir, rel)) {
			log.Printf("Found %s under %s", rel, dir)
			return dir, true
		}
		if IsCheckoutRoot(dir) {
			log.Printf("Reached checkout root %s without finding %s", dir, rel)
			return "", false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			log.Printf("Reached filesystem root without finding %s", rel)
			return "", false
		}
		dir = parent
	}
}

// IsCheckoutRoot reports whether dir is the top of a git checkout. Worktrees
// and submodules have a .git file instead of a directory; both count.
func IsCheckoutRoot(dir string) bool {
	return exists(filepath.Join(dir, ".git"))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
