package main

import (
	"concert-purchase/cmd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	cmd.Start()
}
