package main

import "github.com/clawdiard/ps-nycculturemap/internal/cli"

func main() {
	cli.Execute()
}
