package main

import "github.com/forPelevin/chapsplit/internal/cli"

func main() {
	cli.Main()
}
