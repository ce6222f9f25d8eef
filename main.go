package main

import "github.com/AishaAlajmi/AutoDash/cmd"

func main() {
	cmd.Execute()
}
