package configuration

import (
	"bufio"
	"os"
	"strings"

	"channel-insights/infrastructure/logger"
)

// LoadEnvFromFile applies KEY=VALUE lines from each readable file in paths to
// the process environment and returns the files it read. Variables that are
// already set keep their value.
func LoadEnvFromFile(paths ...string) []string {
	var loaded []string
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			continue
		}

		applied := 0
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			key, val, ok := parseEnvLine(scanner.Text())
			if !ok {
				continue
			}
			if _, exists := os.LookupEnv(key); !exists {
				_ = os.Setenv(key, val)
				applied++
			}
		}
		_ = f.Close()

		loaded = append(loaded, p)
		logger.GetLogger().WithField("file", p).WithField("applied", applied).Debug("Env file loaded")
	}
	return loaded
}

// parseEnvLine accepts KEY=VALUE, KEY="VALUE" and an optional "export " prefix
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, val, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(val), "\"'"), true
}
