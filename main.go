package main

import "sharefm/cmd"

func main() {
	cmd.Execute()
}
