package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/kn/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// DataPath places an auxiliary file (log, prefs db) next to the config.
func DataPath(homeDir, name string) string {
	return filepath.Join(homeDir, constants.ConfigDir, name)
}

func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.OpenFile(configPath, os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	cfg, err := Load(homeDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.CurrentWorkspace == "" {
		return &ConfigInitError{Path: configPath, Reason: "no current workspace is configured"}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return err
	}

	required := map[string]string{
		"BaseURL": ws.BaseURL,
		"Editor":  ws.Editor,
	}

	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return &ConfigInitError{
				Path:   configPath,
				Reason: fmt.Sprintf("required config variable %q is not set", name),
			}
		}
	}

	return nil
}
