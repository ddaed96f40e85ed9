// typeahead is a suggestion engine for interactive search boxes.
// Single binary — debounced queries, a shared local history, remote sources.
package main

import (
	"os"

	"github.com/corey/typeahead/cmd/typeahead/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
