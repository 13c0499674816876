package main

import "github.com/vytor/codeflash/internal/cli"

func main() {
	cli.Execute()
}
