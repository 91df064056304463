package main

import "intl-extract/internal/cli"

func main() {
	cli.Execute()
}
