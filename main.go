package main

import "github.com/vitobasso/gosynth/cmd"

func main() {
	cmd.Execute()
}
