package main

import "github.com/clausekit/clausekit/internal/cli"

func main() {
	cli.Execute()
}
