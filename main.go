package main

import "github.com/fakeyudi/trail/cmd"

func main() {
	cmd.Execute()
}
