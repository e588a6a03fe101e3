package state

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/bootstrap"
	"github.com/Paintersrp/kn/internal/config"
	"github.com/Paintersrp/kn/internal/constants"
	"github.com/Paintersrp/kn/internal/prefs"
)

type State struct {
	Config        *config.Config
	Workspace     *config.Workspace
	WorkspaceName string
	Client        *api.Client
	Prefs         *prefs.Store
	Bootstrap     *bootstrap.Data
	Watcher       *BootstrapWatcher
	Logger        zerolog.Logger
	Home          string

	logFile *os.File
}

type Options struct {
	Workspace string
	Debug     bool
}

func NewState(opts Options) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	if opts.Workspace != "" {
		if err := cfg.ActivateWorkspace(opts.Workspace); err != nil {
			return nil, err
		}
	}

	ws, err := cfg.ActiveWorkspace()
	if err != nil {
		return nil, err
	}

	logger, logFile, err := NewLogger(config.DataPath(home, constants.LogFile), opts.Debug || viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger = logger.With().Str("workspace", cfg.CurrentWorkspace).Logger()

	s := &State{
		Config:        cfg,
		Workspace:     ws,
		WorkspaceName: cfg.CurrentWorkspace,
		Logger:        logger,
		Home:          home,
		logFile:       logFile,
	}

	boot, err := bootstrap.Load(ws.BootstrapFile)
	if err != nil {
		logger.Warn().Err(err).Str("path", ws.BootstrapFile).Msg("bootstrap payload ignored")
	}
	s.Bootstrap = boot

	s.Client = api.New(
		ws.BaseURL,
		api.WithSession(ws.SessionID),
		api.WithCSRFToken(ws.CSRFToken),
		api.WithTimeout(ws.Timeout()),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
	)
	s.Client.SetCSRFToken(boot.CSRFToken)

	return s, nil
}

// OpenPrefs opens the device-local preferences store. Only the TUI needs
// it, and a second running instance holds the file lock, so failure leaves
// Prefs nil and preferences unpersisted.
func (s *State) OpenPrefs() {
	if s == nil || s.Prefs != nil {
		return
	}
	store, err := prefs.Open(config.DataPath(s.Home, constants.PrefsFile), s.WorkspaceName)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("preferences unavailable")
		return
	}
	s.Prefs = store
}

// WatchBootstrap starts following the configured bootstrap file.
func (s *State) WatchBootstrap() {
	if s == nil || s.Watcher != nil || strings.TrimSpace(s.Workspace.BootstrapFile) == "" {
		return
	}
	w, err := NewBootstrapWatcher(s.Workspace.BootstrapFile)
	if err != nil {
		s.Logger.Warn().Err(err).Msg("bootstrap watcher unavailable")
		return
	}
	s.Watcher = w
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(home + constants.ConfigDir)
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()

	err := config.EnsureConfigExists(home)
	if err != nil {
		return nil, err
	}

	return config.Load(home)
}

// Close releases the preferences store, the bootstrap watcher and the log
// file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Prefs != nil {
		if err := s.Prefs.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Prefs = nil
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logFile = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
