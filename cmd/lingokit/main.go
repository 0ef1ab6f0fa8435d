package main

import "github.com/eslsoft/lingokit/cmd"

func main() {
	cmd.Execute()
}
