package main

import "github.com/aalvaropc/quadra/internal/cli"

func main() {
	cli.Execute()
}
