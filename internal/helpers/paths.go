package helpers

import (
	"os"
	"path/filepath"
	"runtime"
)

const DataDirEnv = "MAGICIAN_DATA_DIR"

// RootDir is the module root, located relative to this source file.
func RootDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// DataDir is where the precomputed tables live: $MAGICIAN_DATA_DIR when set,
// otherwise <root>/data.
func DataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(RootDir(), "data")
}

func DataFile(name string) string {
	return filepath.Join(DataDir(), name)
}
