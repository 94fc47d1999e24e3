package main

import "github.com/armourconstruction/site/cmd"

func main() {
	cmd.Execute()
}
