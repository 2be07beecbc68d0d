package main

import "github.com/openbom/bomsight/cmd/cli"

func main() {
	cli.Execute()
}
