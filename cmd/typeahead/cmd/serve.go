package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/typeahead/internal/adapters/web"
)

var (
	serveAddr  string
	serveWords string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local suggest endpoint for development",
	Long: "Serves GET /suggest?q= over a word list in the {\"results\": [...]} shape,\n" +
		"so the engine has something to talk to without a third-party API.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8089", "listen address")
	serveCmd.Flags().StringVar(&serveWords, "words", "", "word list file, one entry per line (default: a small builtin list)")
}

// builtinWords keeps `typeahead serve` useful with zero setup.
var builtinWords = []string{
	"cat", "car", "card", "care", "career", "carbon", "cargo", "carpet",
	"dog", "door", "double", "doubt", "dozen",
	"search", "season", "second", "secret", "section", "sector",
	"table", "tablet", "tailor", "talent", "target", "task",
}

func runServe(cmd *cobra.Command, args []string) error {
	words := builtinWords
	if serveWords != "" {
		loaded, err := loadWords(serveWords)
		if err != nil {
			return err
		}
		words = loaded
	}

	server := web.NewServer(words)
	if err := server.Start(serveAddr); err != nil {
		return err
	}
	defer server.Stop()

	fmt.Printf("%s⚡ suggest server%s │ %d words\n", colorBold, colorReset, len(words))
	fmt.Printf("  endpoint: http://%s/suggest?q=\n", server.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("\n⚡ shutting down...")
	return server.Stop()
}

func loadWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if word := strings.TrimSpace(scanner.Text()); word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return words, nil
}
