package attacks

import (
	"path/filepath"

	. "github.com/cricklet/magician/internal/helpers"
)

func dataPath(dir string, name string) string {
	if dir == "" {
		return DataFile(name)
	}
	return filepath.Join(dir, name)
}
