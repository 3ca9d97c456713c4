package main

import (
	"os"

	"github.com/familybank-dev/familybank/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
