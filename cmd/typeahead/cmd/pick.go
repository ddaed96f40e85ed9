package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corey/typeahead/internal/app"
	"github.com/corey/typeahead/internal/ui"
)

var pickPrompt string

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactive suggestion picker",
	Long: "Full-screen terminal picker: type to search, arrows to navigate (wrapping),\n" +
		"Enter to commit, Escape to dismiss. The committed value prints to stdout.",
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVar(&pickPrompt, "prompt", "> ", "prompt text")
}

func runPick(cmd *cobra.Command, args []string) error {
	paths, opts := setup()
	resolver, closeStore := openResolver(paths, opts)
	defer closeStore()

	picker := ui.NewPicker(app.EngineConfig{
		Options: opts,
		History: resolver.History,
		Source:  resolver.Source,
		OnError: func(err error) { warnf("%v", err) },
	}, pickPrompt)

	value, err := picker.Run()
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			os.Exit(1)
		}
		return err
	}
	fmt.Println(value)
	return nil
}
