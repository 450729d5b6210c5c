package main

import "github.com/iammorganparry/interactive-feedback/internal/cli"

func main() {
	cli.Execute()
}
