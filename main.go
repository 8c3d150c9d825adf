package main

import "github.com/Tiliavir/togglpie/cmd"

func main() {
	cmd.Execute()
}
