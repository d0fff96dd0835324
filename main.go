package main

import "github.com/ridoystarlord/matchstats/cmd"

func main() {
	cmd.Execute()
}
