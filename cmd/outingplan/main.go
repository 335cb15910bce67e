package main

import "github.com/example/outing-planner/cmd"

func main() {
	cmd.Execute()
}
