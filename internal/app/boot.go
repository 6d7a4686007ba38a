package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/relaypoint/telnetd/internal/config"
	"github.com/relaypoint/telnetd/internal/logger"
	"github.com/relaypoint/telnetd/internal/nodes"
	"github.com/relaypoint/telnetd/internal/store"
)

// Version is stamped into the welcome banner template and the CLI's
// --version output.
const Version = "0.1.0"

var (
	Config *config.Config
	Store  *store.Store
	Nodes  *nodes.Manager
	Logger *slog.Logger
)

// Boot loads configuration, wires the logger, opens the sqlite store and
// allocates the session registry. It is safe to call again (e.g. on a
// config hot-reload) — the previous Store is closed once the new one is
// open, and Nodes keeps its slots (so in-flight sessions are not dropped)
// while being pointed at the new Store.
func Boot(configPath string, quiet bool) error {
	if configPath == "" {
		configPath = "config/example.yml"
	}

	newConfig, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	Config = newConfig

	Logger = logger.Setup(Config.Loggers, quiet)

	dir := Config.Paths.Data
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data path: %w", err)
	}

	newStore, err := store.New(filepath.Clean(filepath.Join(dir, "data.sqlite3")), quiet)
	if err != nil {
		return fmt.Errorf("failed to connect to the database: %w", err)
	}

	if Store != nil {
		if err := Store.Close(); err != nil {
			Logger.Error("failed to close existing store", "err", err)
		}
	}
	Store = newStore

	if Nodes == nil {
		Nodes = nodes.NewManager(Config.MaxSessions)
	}
	Nodes.WithStore(Store)

	if !quiet {
		Logger.Info("successfully loaded configuration", "file", configPath)
	}

	return nil
}
