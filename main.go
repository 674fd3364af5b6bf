package main

import "github.com/lookbusy1344/c8asm/cmd"

func main() {
	cmd.Execute()
}
