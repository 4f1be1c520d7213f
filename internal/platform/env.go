package platform

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvAdapter  = "NOTEKEEPER_ADAPTER"
	EnvAPIRoot  = "NOTEKEEPER_API_ROOT"
	EnvSeed     = "NOTEKEEPER_SEED"
	EnvMaxTitle = "NOTEKEEPER_MAX_TITLE"
)

// LoadEnv loads the nearest .env file above startDir into the process
// environment. Variables that are already set win. It returns the path of the
// loaded file, or "" when there is none.
func LoadEnv(startDir string) (string, error) {
	path, err := FindEnvFile(startDir)
	if err != nil {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return path, nil
}

// FromEnv translates the NOTEKEEPER_* variables into options.
// Unset or blank variables contribute nothing.
func FromEnv() ([]Option, error) {
	var opts []Option
	if v := lookup(EnvAdapter); v != "" {
		opts = append(opts, WithAdapter(v))
	}
	if v := lookup(EnvAPIRoot); v != "" {
		opts = append(opts, WithBaseURL(v))
	}
	if v := lookup(EnvSeed); v != "" {
		opts = append(opts, WithSeedFiles(v))
	}
	if v := lookup(EnvMaxTitle); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvMaxTitle, v)
		}
		opts = append(opts, WithMaxTitleLength(n))
	}
	return opts, nil
}

func lookup(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
