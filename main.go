package main

import "github.com/tranvictor/visualsign/cmd"

func main() {
	cmd.Execute()
}
