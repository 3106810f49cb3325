package main

import (
	"os"

	"contentful-cli/cmd"
	"contentful-cli/internal/utils"
)

func main() {
	if err := cmd.Execute(); err != nil {
		utils.PrintError(err)
		os.Exit(1)
	}
}
