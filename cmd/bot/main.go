package main

import (
	_ "embed"
	"os"

	"github.com/tracker-tv/github-hygiene-bot/internal/cli"
)

//go:embed policies/default.yml
var defaultPolicy []byte

func main() {
	if err := cli.Execute(defaultPolicy); err != nil {
		os.Exit(1)
	}
}
