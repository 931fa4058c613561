// Command relm inspects and maintains the databases of relm applications.
//
//	relm ping
//	relm count users posts
//	relm truncate sessions --yes
//	relm render users --where age,>=,18 --order created_at:desc --limit 10
package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
