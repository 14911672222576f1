package main

import "lunar-assistant/cmd"

func main() {
	cmd.Execute()
}
