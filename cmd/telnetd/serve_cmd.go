package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/relaypoint/telnetd/internal/app"
	"github.com/relaypoint/telnetd/internal/transport"
)

var serveCmd = &cobra.Command{
	Use:               "serve",
	Short:             "Start the telnet server",
	PersistentPreRunE: bootForServe,
	RunE:              runServe,
}

func bootForServe(cmd *cobra.Command, args []string) error {
	return app.Boot(cfgFile, false)
}

// runServe drives the accept loop and, when hotReload is configured,
// watches every loaded config file and rebuilds the server in place on a
// write — sessions already connected keep their telnet.Session untouched,
// only newly accepted connections see the reloaded ListenerConfig.
func runServe(cmd *cobra.Command, args []string) error {
	restartChan := make(chan struct{}, 1)
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)

	for {
		var watcher *fsnotify.Watcher
		if app.Config.HotReload {
			var err error
			watcher, err = fsnotify.NewWatcher()
			if err != nil {
				app.Logger.Error("failed to create watcher", "err", err)
			} else {
				for _, file := range app.Config.LoadedFiles {
					if err := watcher.Add(file); err != nil {
						app.Logger.Error("failed to watch config file", "file", relPath(file), "err", err)
					}
				}
				go watchConfig(watcher, restartChan)
			}
		}

		server := transport.NewServer(app.Config.Listener)
		serverErr := make(chan error, 1)
		go func() { serverErr <- server.ListenAndServe() }()

		select {
		case <-stopChan:
			app.Logger.Info("shutting down")
			server.Stop()
			if watcher != nil {
				watcher.Close()
			}
			return nil

		case <-restartChan:
			server.Stop()
			if watcher != nil {
				watcher.Close()
			}
			<-serverErr
			if err := app.Boot(cfgFile, false); err != nil {
				app.Logger.Error("failed to reload config", "err", err)
			}

		case err := <-serverErr:
			if watcher != nil {
				watcher.Close()
			}
			return err
		}
	}
}

func watchConfig(w *fsnotify.Watcher, restart chan<- struct{}) {
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			app.Logger.Info("config file modified, reloading", "file", relPath(event.Name))
			select {
			case restart <- struct{}{}:
			default:
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			app.Logger.Error("watcher error", "err", err)
		}
	}
}

func relPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return path
	}
	return rel
}
