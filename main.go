package main

import "github.com/mouse-blink/treesync/cmd"

func main() {
	cmd.Execute()
}
