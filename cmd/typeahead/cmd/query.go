package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/typeahead/internal/adapters/socket"
	"github.com/corey/typeahead/internal/ports"
)

var (
	queryCommit bool
	queryJSON   bool
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Resolve suggestions for a query",
	Long: "Matches the shared history and the configured endpoint, merged history-first.\n" +
		"Uses the daemon when one is running, otherwise opens the store directly.",
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().BoolVar(&queryCommit, "commit", false, "record the query into the history (explicit submit)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "emit rows as JSON")
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := args[0]
	paths, opts := setup()

	var items []ports.Suggestion
	var elapsed string

	client := socket.NewClient(socket.SocketPath(paths.DB))
	if client.Ping() {
		result, err := client.Suggest(query)
		if err != nil {
			return err
		}
		items, elapsed = result.Items, result.Elapsed
		if queryCommit {
			if err := client.Record(query); err != nil {
				return err
			}
		}
	} else {
		resolver, closeStore := openResolver(paths, opts)
		defer closeStore()

		start := time.Now()
		out := resolver.Resolve(context.Background(), query)
		items, elapsed = out.Items, time.Since(start).String()
		if queryCommit {
			resolver.Record(query)
		}
	}

	if queryJSON {
		return json.NewEncoder(os.Stdout).Encode(items)
	}
	fmt.Println(formatSuggestions(items, elapsed))
	return nil
}
