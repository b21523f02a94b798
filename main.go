package main

import "github.com/naka-gawa/greeting-action/cmd"

func main() {
	cmd.Execute()
}
