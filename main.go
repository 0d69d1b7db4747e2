package main

import "github.com/Norgate-AV/buildprobe/cmd"

func main() {
	cmd.Execute()
}
