package main

import "github.com/quangtn/mediaprep/internal/cli"

func main() {
	cli.Main()
}
