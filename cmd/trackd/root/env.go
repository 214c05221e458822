package root

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sandeepkv93/trackd/internal/config"
	"github.com/sandeepkv93/trackd/internal/logging"
	"github.com/sandeepkv93/trackd/internal/storage"
	"github.com/sandeepkv93/trackd/internal/tracker"
)

type env struct {
	cfg   config.RuntimeConfig
	log   *zap.Logger
	repo  storage.Repository
	store *tracker.Store
}

type openOptions struct {
	// logToStderr ignores LogFile; serve logs to the terminal.
	logToStderr bool
}

func openEnv(flags *globalFlags, opts openOptions) (*env, func(), error) {
	cfg, err := config.Load(config.LoadOptions{ConfigFile: flags.configFile, EnvFile: flags.envFile})
	if err != nil {
		return nil, nil, err
	}
	logFile := cfg.LogFile
	if opts.logToStderr {
		logFile = ""
	}
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: logFile})
	if err != nil {
		return nil, nil, err
	}
	repo, err := storage.Open(storage.Backend(cfg.Backend), cfg.ResolvedDataPath())
	if err != nil {
		_ = log.Sync()
		return nil, nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	log.Debug("storage opened", zap.String("backend", cfg.Backend), zap.String("path", cfg.ResolvedDataPath()))

	store := tracker.New(repo, tracker.Options{Logger: log, TopTasks: cfg.TopTasks})
	cleanup := func() {
		if err := repo.Close(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
		_ = log.Sync()
	}
	return &env{cfg: cfg, log: log, repo: repo, store: store}, cleanup, nil
}
