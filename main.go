package main

import "github.com/readme-tools/update-repo-info/cmd"

func main() {
	cmd.Execute()
}
