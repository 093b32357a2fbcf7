package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"gopkg.in/yaml.v3"
)

// GetConfigPath determines the configuration file path.
// Priority:
// 1. -globalconfig/-gc command-line flag (passed in as providedPath)
// 2. CAREERWATCH_CONFIG_PATH environment variable
// 3. config.yaml / config.json in the current working directory
// 4. config.yaml / config.json in the executable's directory
func GetConfigPath(providedPath string) string {
	if providedPath != "" {
		if _, err := os.Stat(providedPath); err == nil {
			return providedPath
		}
	}

	envPath := os.Getenv("CAREERWATCH_CONFIG_PATH")
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{"config.yaml", "config.json"}
	locations := []string{}

	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if errExe == nil && exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadGlobalConfig loads the configuration from a file or default locations,
// supporting both YAML and JSON formats, then applies environment overrides
// for the mail transport secrets. A missing config file yields the defaults.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, errorwrapper.WrapError(err, "failed to read config file '"+filePath+"'")
		}

		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse config content")
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// applyEnvOverrides sources the transport credentials from the process
// environment so they never have to live in the config file.
func applyEnvOverrides(cfg *GlobalConfig) {
	if host := os.Getenv("SMTP_SERVER"); host != "" {
		cfg.NotificationConfig.SMTPHost = host
	}
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.NotificationConfig.SMTPPort = port
		}
	}
	if sender := os.Getenv("SENDER_EMAIL"); sender != "" {
		cfg.NotificationConfig.SenderEmail = sender
	}
	if password := os.Getenv("SENDER_PASSWORD"); password != "" {
		cfg.NotificationConfig.SenderPassword = password
	}
	if recipients := os.Getenv("RECIPIENT_EMAIL"); recipients != "" {
		cfg.NotificationConfig.RecipientEmails = recipients
	}
}
