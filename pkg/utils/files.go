package utils

import (
	"io"
	"os"
	"path/filepath"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}

	// Get the directory containing the file
	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadSource returns the program text at path, or all of stdin when path is
// empty or "-".
func ReadSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	fullPath, _, err := GetPathInfo(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
