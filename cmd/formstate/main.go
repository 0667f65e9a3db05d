package main

import "github.com/goliatone/go-formstate/internal/cli"

func main() {
	cli.Execute()
}
