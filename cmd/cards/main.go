package main

import "github.com/amterp/cards/internal/cli"

func main() {
	cli.Run()
}
