package main

import "github.com/hookbridge/hookbridge/cmd/hookbridge/cmd"

func main() {
	cmd.Execute()
}
