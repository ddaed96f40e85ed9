package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/typeahead/internal/adapters/fsnotify"
	"github.com/corey/typeahead/internal/adapters/socket"
	"github.com/corey/typeahead/internal/app"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the typeahead daemon",
	Long: "The daemon holds the history database open and serves every CLI\n" +
		"invocation over a Unix socket, so all instances share one cache.",
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	paths, opts := setup()
	sockPath := socket.SocketPath(paths.DB)

	// Check if already running
	client := socket.NewClient(sockPath)
	if client.Ping() {
		fmt.Println("⚡ daemon already running")
		return nil
	}

	resolver, closeStore := openResolver(paths, opts)
	defer closeStore()

	server := socket.NewServer(app.NewService(resolver), sockPath)
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	// Hot-reload the config: file change -> reload bus -> resolver options.
	bus := app.NewReloadBus()
	cancel := bus.Subscribe(resolver.SetOptions)
	defer cancel()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		warnf("config watch unavailable: %v", err)
	} else {
		defer watcher.Stop()
		err := watcher.Watch(paths.Config, func() {
			reloaded, err := app.LoadConfig(paths.Config)
			if err != nil {
				warnf("config reload: %v", err)
				return
			}
			bus.Publish(reloaded)
			fmt.Println("⚡ config reloaded")
		})
		if err != nil {
			warnf("config watch unavailable: %v", err)
		}
	}

	fmt.Printf("⚡ typeahead daemon started at %s\n", sockPath)

	// Wait for shutdown signal or remote stop
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-server.ShutdownCh():
	}

	fmt.Println("\n⚡ shutting down...")
	return server.Stop()
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	paths, _ := setup()
	sockPath := socket.SocketPath(paths.DB)
	client := socket.NewClient(sockPath)

	if !client.Ping() {
		fmt.Println("⚡ daemon is not running")
		return nil
	}

	if err := client.Shutdown(); err != nil {
		return err
	}

	fmt.Println("⚡ daemon stopped")
	return nil
}
