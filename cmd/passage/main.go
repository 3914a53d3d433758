package main

import "passage/internal/cli"

func main() {
	cli.Execute()
}
