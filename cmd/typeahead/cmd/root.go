package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/typeahead/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "typeahead",
	Short: "typeahead — suggestion engine for search boxes",
	Long:  "Debounced remote suggestions merged with a shared local query history.",
}

// setup resolves paths and loads the config file.
func setup() (*app.Paths, app.Options) {
	paths := app.NewPaths(app.DefaultHome())
	opts, err := app.LoadConfig(paths.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v (using defaults)\n", err)
	}
	return paths, opts
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(serveCmd)
}
