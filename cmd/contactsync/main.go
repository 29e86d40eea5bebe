package main

import (
	"os"

	"github.com/xavierca1/contactsync/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
