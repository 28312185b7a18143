package main

import "listing-merge/cmd"

func main() {
	cmd.Execute()
}
