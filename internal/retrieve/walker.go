package retrieve

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// walkRoot lists every supported document under root, in lexical walk
// order. A root that does not exist contributes zero documents, and an
// unreadable entry inside the root is logged and skipped rather than
// failing the whole retrieval.
func walkRoot(root string, supported func(string) bool, logger *log.Logger) []string {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return nil
	}

	var files []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("corpus entry skipped", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if supported(path) {
			files = append(files, path)
		}
		return nil
	})

	return files
}
