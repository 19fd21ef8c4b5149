package main

import "chromalint/cmd"

func main() {
	cmd.Execute()
}
