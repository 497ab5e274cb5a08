package cmd

import (
	"os"
	"path/filepath"

	"github.com/msto63/mRechner/internal/background"
	"github.com/msto63/mRechner/internal/history"
	"github.com/msto63/mRechner/internal/i18n"
	"github.com/msto63/mRechner/internal/keymap"
	"github.com/msto63/mRechner/internal/settings"
	"github.com/msto63/mRechner/pkg/core/config"
	"github.com/msto63/mRechner/pkg/core/logging"
)

// app bundles the collaborators shared by all front ends
type app struct {
	cfg          *config.Config
	settings     *settings.Settings
	settingsPath string
	logger       *logging.Logger
	tr           *i18n.Translator
	keymap       *keymap.Keymap
	store        history.Store
	bg           *background.Provider
}

// newApp loads configuration and opens the history. Front ends that own
// the terminal log to a file instead of stderr.
func newApp(component string, logToFile bool) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logCfg := logging.DefaultLoggerConfig(component)
	logCfg.Level = cfg.General.LogLevel
	logCfg.Format = cfg.General.LogFormat
	if verbose {
		logCfg.Level = "debug"
	}
	if logToFile {
		logCfg.FilePath = cfg.LogPath()
		logCfg.Quiet = true
	}
	logger := logging.Wrap(logging.NewLogger(logCfg))

	settingsPath := filepath.Join(cfg.General.DataDir, "settings.json")
	s, err := settings.Load(settingsPath)
	if err != nil {
		logger.Warn("Failed to read settings, using defaults", "path", settingsPath, "error", err)
		s = settings.Defaults()
	}
	_, statErr := os.Stat(settingsPath)
	hasSettings := statErr == nil

	language := cfg.General.Language
	if s.Language != "" {
		language = s.Language
	}
	tr, err := i18n.New(language)
	if err != nil {
		return nil, err
	}

	km := keymap.Default()
	if cfg.Keymap.Path != "" {
		if km, err = keymap.Load(cfg.Keymap.Path); err != nil {
			return nil, err
		}
	}

	store, err := history.Open(history.Options{
		Backend: cfg.History.Backend,
		Path:    cfg.HistoryPath(),
		Limit:   cfg.History.MaxEntries,
	})
	if err != nil {
		return nil, err
	}

	bg := background.NewProvider()
	bg.SetAlpha(cfg.Background.Alpha)
	if hasSettings {
		bg.SetAlpha(s.Alpha)
	} else {
		s.ShowHistory = cfg.Display.ShowHistory
	}

	logger.Debug("Configuration loaded",
		"data_dir", cfg.General.DataDir,
		"history", cfg.History.Backend,
		"language", tr.Locale(),
	)

	return &app{
		cfg:          cfg,
		settings:     s,
		settingsPath: settingsPath,
		logger:       logger,
		tr:           tr,
		keymap:       km,
		store:        store,
		bg:           bg,
	}, nil
}

// backgroundPath picks the flag, then the saved setting, then the config
func (a *app) backgroundPath(flag string) string {
	switch {
	case flag != "":
		return flag
	case a.settings.BackgroundPath != "":
		return a.settings.BackgroundPath
	default:
		return a.cfg.Background.Path
	}
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close history", "error", err)
	}
	logging.CloseFileSinks()
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}
