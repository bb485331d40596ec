package main

import (
	"os"

	"github.com/andinosoft/alegra-sharepoint-sync/commands"
)

func main() {
	os.Exit(commands.Execute())
}
