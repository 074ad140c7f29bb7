package main

import "github.com/sawada-k/github-activity/cmd"

func main() {
	cmd.Execute()
}
