package main

import "github.com/theirongolddev/habitgame/cmd"

func main() {
	cmd.Execute()
}
