// Package storage is the durability boundary: the YAML config file and
// the JSON session snapshot. It holds no timer logic.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
)

const configFileName = "config.yaml"

type yamlConfig struct {
	WorkDurationMin       uint32 `yaml:"work_duration_min"`
	ShortBreakDurationMin uint32 `yaml:"short_break_duration_min"`
	LongBreakDurationMin  uint32 `yaml:"long_break_duration_min"`
	SessionsUntilLong     uint32 `yaml:"sessions_until_long_break"`
	EnableNotifications   *bool  `yaml:"enable_notifications"`
	AutoStartBreaks       *bool  `yaml:"auto_start_breaks"`
	AutoStartWork         *bool  `yaml:"auto_start_work"`
}

// LoadConfig reads the user configuration from YAML.
// A missing config file yields the defaults; a malformed one is an error
// so startup can refuse to run with settings the user did not intend.
func LoadConfig(appName string) (model.Config, error) {
	config := model.DefaultConfig()
	configPath, err := ConfigPath(appName)
	if err != nil {
		return config, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config, nil
}

// SaveConfig writes the configuration to YAML, creating the config
// directory as needed.
func SaveConfig(appName string, config model.Config) error {
	configPath, err := ConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	enableNotifications := config.EnableNotifications
	autoStartBreaks := config.AutoStartBreaks
	autoStartWork := config.AutoStartWork
	fileData := yamlConfig{
		WorkDurationMin:       config.WorkDurationMin,
		ShortBreakDurationMin: config.ShortBreakDurationMin,
		LongBreakDurationMin:  config.LongBreakDurationMin,
		SessionsUntilLong:     config.SessionsUntilLong,
		EnableNotifications:   &enableNotifications,
		AutoStartBreaks:       &autoStartBreaks,
		AutoStartWork:         &autoStartWork,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ConfigPath returns the well-known config file location.
func ConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

func applyYamlConfig(config *model.Config, fileData yamlConfig) {
	if fileData.WorkDurationMin > 0 {
		config.WorkDurationMin = fileData.WorkDurationMin
	}
	if fileData.ShortBreakDurationMin > 0 {
		config.ShortBreakDurationMin = fileData.ShortBreakDurationMin
	}
	if fileData.LongBreakDurationMin > 0 {
		config.LongBreakDurationMin = fileData.LongBreakDurationMin
	}
	if fileData.SessionsUntilLong > 0 {
		config.SessionsUntilLong = fileData.SessionsUntilLong
	}
	if fileData.EnableNotifications != nil {
		config.EnableNotifications = *fileData.EnableNotifications
	}
	if fileData.AutoStartBreaks != nil {
		config.AutoStartBreaks = *fileData.AutoStartBreaks
	}
	if fileData.AutoStartWork != nil {
		config.AutoStartWork = *fileData.AutoStartWork
	}
}
