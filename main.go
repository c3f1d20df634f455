package main

import "github.com/chriserin/featsplit/cmd"

func main() {
	cmd.Execute()
}
