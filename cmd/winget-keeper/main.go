package main

import "github.com/oshokin/winget-keeper/cmd/winget-keeper/cmd"

func main() {
	cmd.Execute()
}
