package main

import "brainrot-catalog/cmd"

func main() {
	cmd.Execute()
}
