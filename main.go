package main

import (
	"os"

	"todoapp/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
