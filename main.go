package main

import "github.com/zbiljic/semrel/cmd"

func main() {
	cmd.Execute()
}
