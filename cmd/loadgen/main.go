package main

import (
	"os"

	"github.com/osama171998/minna-app/internal/tools/loadgen"
)

func main() {
	if err := loadgen.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
