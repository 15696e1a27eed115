package main

import "github.com/datasnap/datasnap/cmd"

func main() {
	cmd.Execute()
}
