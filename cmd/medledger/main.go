package main

import "github.com/medledger/medledger-go/internal/cli"

func main() {
	cli.Execute()
}
