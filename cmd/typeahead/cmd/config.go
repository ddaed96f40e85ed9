package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/typeahead/internal/adapters/socket"
	"github.com/corey/typeahead/internal/app"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the resolved options, file paths, and daemon status. No daemon required.",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the defaults",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	paths, opts := setup()

	client := socket.NewClient(socket.SocketPath(paths.DB))
	daemonStatus := fmt.Sprintf("%s✗ not running%s", colorYellow, colorReset)
	if client.Ping() {
		daemonStatus = fmt.Sprintf("%s✓ running%s", colorGreen, colorReset)
	}

	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s(none — history only)%s", colorGray, colorReset)
	}

	fmt.Printf("%s⚡ typeahead config%s\n", colorBold, colorReset)
	fmt.Printf("  Home:        %s\n", paths.Root)
	fmt.Printf("  Config:      %s\n", paths.Config)
	fmt.Printf("  History DB:  %s\n", paths.DB)
	fmt.Printf("  Socket:      %s\n", socket.SocketPath(paths.DB))
	fmt.Printf("  Daemon:      %s\n", daemonStatus)
	fmt.Printf("  Endpoint:    %s\n", endpoint)
	fmt.Printf("  Min length:  %d\n", opts.MinQueryLength)
	fmt.Printf("  Max results: %d\n", opts.MaxResults)
	fmt.Printf("  Debounce:    %dms\n", opts.DebounceDelayMs)
	fmt.Printf("  Cache size:  %d\n", opts.CacheSize)
	fmt.Printf("  Required:    %v\n", opts.Required)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	paths, _ := setup()
	if err := app.SaveConfig(paths.Config, app.DefaultOptions()); err != nil {
		return err
	}
	fmt.Printf("⚡ wrote %s\n", paths.Config)
	return nil
}
