package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/typeahead/internal/adapters/socket"
	"github.com/corey/typeahead/internal/domain/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the shared query history",
	Long:  "Lists fresh entries newest-first. Expired entries are filtered, not shown.",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all history entries",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	paths, opts := setup()

	var entries []history.Entry
	client := socket.NewClient(socket.SocketPath(paths.DB))
	if client.Ping() {
		result, err := client.History()
		if err != nil {
			return err
		}
		entries = result.Entries
	} else {
		resolver, closeStore := openResolver(paths, opts)
		defer closeStore()
		var err error
		entries, err = resolver.History.All()
		if err != nil {
			return err
		}
	}

	if len(entries) == 0 {
		fmt.Printf("%s⚡ history is empty%s\n", colorGray, colorReset)
		return nil
	}

	fmt.Printf("%s⚡ %d entries%s\n", colorBold, len(entries), colorReset)
	for _, e := range entries {
		age := time.Since(time.Unix(e.Timestamp, 0)).Round(time.Minute)
		fmt.Printf("  %s%-40s%s %s%s ago%s\n", colorCyan, e.Query, colorReset, colorGray, age, colorReset)
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	paths, opts := setup()

	client := socket.NewClient(socket.SocketPath(paths.DB))
	if client.Ping() {
		if err := client.ClearHistory(); err != nil {
			return err
		}
	} else {
		resolver, closeStore := openResolver(paths, opts)
		defer closeStore()
		if err := resolver.History.Clear(); err != nil {
			return err
		}
	}

	fmt.Println("⚡ history cleared")
	return nil
}
