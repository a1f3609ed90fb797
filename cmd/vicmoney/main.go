package main

import (
	"os"

	"vicmoney/cmd/vicmoney/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
