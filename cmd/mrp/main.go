package main

import "github.com/sporadiq/mrp/pkg/interfaces/cli/commands"

func main() {
	commands.Execute()
}
