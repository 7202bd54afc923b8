package main

import (
	"os"

	"github.com/acmesaas/assistant/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
