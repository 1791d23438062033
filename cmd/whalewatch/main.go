package main

import "github.com/vietddude/whalewatch/internal/cli"

func main() {
	cli.Execute()
}
