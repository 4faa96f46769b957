package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	appDir   = "walletsentry"
	fileName = "walletsentry.yaml"
)

// ErrNoConfigFile is returned when no configuration file could be found.
var ErrNoConfigFile = errors.New("no configuration file found")

// Find returns the configuration file to load. An explicit path (the flag,
// then env.Config) is used as is. Otherwise the first existing file among
// SearchPaths wins.
func Find(explicit string, env Env) (string, error) {
	for _, path := range []string{explicit, env.Config} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoConfigFile, err)
		}
		return path, nil
	}

	paths := SearchPaths()
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w, searched: %s", ErrNoConfigFile, strings.Join(paths, ", "))
}

// SearchPaths lists, in order, where the configuration file is looked for
// when no explicit path is given.
func SearchPaths() []string {
	paths := []string{fileName}

	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, appDir, fileName))
	}

	// Set by systemd for units declaring ConfigurationDirectory=.
	if dir := os.Getenv("CONFIGURATION_DIRECTORY"); dir != "" {
		for d := range strings.SplitSeq(dir, ":") {
			paths = append(paths, filepath.Join(d, fileName))
		}
	}

	return append(paths, filepath.Join("/etc", appDir, fileName))
}
