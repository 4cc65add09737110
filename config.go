package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const configFileName = ".csvplotrc"

type Config struct {
	SaveDirectory string
	Chart         ChartKind
	Header        bool
	Delimiter     rune
	LogFile       string
}

func defaultConfig() *Config {
	return &Config{
		Chart:     ChartLine,
		Delimiter: defaultDelimiter,
	}
}

// loadConfig reads ~/.csvplotrc. A missing or unreadable file yields the
// defaults; bad lines are ignored.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}
	return loadConfigFile(filepath.Join(homeDir, configFileName), homeDir)
}

func loadConfigFile(configPath, homeDir string) *Config {
	config := defaultConfig()

	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = resolvePath(value, homeDir)
		case "chart", "chart_type":
			if kind, err := parseChartKind(value); err == nil {
				config.Chart = kind
			}
		case "header":
			config.Header = strings.ToLower(value) == "true"
		case "delimiter", "separator":
			if delim, err := parseDelimiter(value); err == nil {
				config.Delimiter = delim
			}
		case "logfile", "log_file", "log":
			config.LogFile = resolvePath(value, homeDir)
		}
	}

	return config
}

// GetSavePath places filename in the save directory, creating it on demand.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("creating save directory: %w", err)
	}
	return filepath.Join(c.SaveDirectory, filename), nil
}

func (c *Config) parseOptions() ParseOptions {
	return ParseOptions{Delimiter: c.Delimiter, Header: c.Header}
}

func resolvePath(value, homeDir string) string {
	if homeDir != "" && (value == "~" || strings.HasPrefix(value, "~/")) {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		} else {
			log.Printf("config: cannot resolve %q: %v", value, err)
		}
	}
	return value
}

// parseDelimiter accepts a single character or the names "tab" and "\t".
func parseDelimiter(value string) (rune, error) {
	switch strings.ToLower(value) {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", value)
	}
	delim, _ := utf8.DecodeRuneInString(value)
	if delim == '"' || delim == '\r' || delim == '\n' || delim == utf8.RuneError {
		return 0, fmt.Errorf("invalid delimiter %q", value)
	}
	return delim, nil
}
