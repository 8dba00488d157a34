package main

import "github.com/smazurov/streamwatch/cmd"

func main() {
	cmd.Execute()
}
