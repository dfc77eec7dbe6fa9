package main

import "github.com/tessro/onair/internal/cli"

func main() {
	cli.Execute()
}
