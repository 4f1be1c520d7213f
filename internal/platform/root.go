package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvFile is the name of the dotenv file looked up by FindEnvFile.
const EnvFile = ".env"

// FindEnvFile looks upwards from startDir for a .env file and returns its
// absolute path. The search stops at the first directory holding .git, so a
// project never picks up a file from outside its tree.
func FindEnvFile(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, EnvFile) {
			return filepath.Join(dir, EnvFile), nil
		}
		if hasFile(dir, ".git") {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("env file not found")
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
