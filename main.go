package main

import "github.com/KaramelBytes/groupr-cli/cmd"

func main() {
	cmd.Execute()
}
