package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that supply flag defaults.
const (
	EnvLogLevel  = "COURSEGRAPH_LOG_LEVEL"
	EnvLogFormat = "COURSEGRAPH_LOG_FORMAT"
	EnvWorkers   = "COURSEGRAPH_WORKERS"
)

// DefaultEnvFile is read, when present, from the working directory.
const DefaultEnvFile = ".env"

// lookupFunc reports the value of an environment variable.
type lookupFunc func(key string) (string, bool)

// loadEnv returns a lookup over the process environment backed by the
// variables in envFile. Process variables win over the file. A missing file
// is not an error.
func loadEnv(envFile string) (lookupFunc, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}, nil
}

func envString(lookup lookupFunc, key, fallback string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(lookup lookupFunc, key string, fallback int) (int, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", key, v)
	}
	return n, nil
}
