package main

import "github.com/icco/timbre/cmd"

func main() {
	cmd.Execute()
}
