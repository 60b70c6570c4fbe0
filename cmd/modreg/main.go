package main

import "github.com/aalvaropc/modreg/internal/cli"

func main() {
	cli.Execute()
}
