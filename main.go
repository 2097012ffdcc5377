package main

import "github.com/luthersystems/beatlisp/cmd"

func main() {
	cmd.Execute()
}
