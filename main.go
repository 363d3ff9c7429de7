package main

import "equipment-visualizer/cmd"

func main() {
	cmd.Execute()
}
