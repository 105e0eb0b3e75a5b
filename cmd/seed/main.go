package main

import (
	"os"

	"github.com/osama171998/minna-app/internal/tools/seed"
)

func main() {
	if err := seed.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
