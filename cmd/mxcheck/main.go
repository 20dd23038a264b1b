package main

import (
	"github.com/Dynom/eri-tools/cmd/mxcheck/commands"
)

var Version = "dev"

func main() {
	commands.SetVersion(Version)
	commands.Execute()
}
