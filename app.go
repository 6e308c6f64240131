package main

import "github.com/masmgr/gitsect/cmd"

func main() {
	cmd.Run()
}
