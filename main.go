package main

import "github.com/anhofer/smartime/cmd"

func main() {
	cmd.Execute()
}
