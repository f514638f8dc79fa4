package main

import "github.com/nextliferp/accountd/internal/cli"

func main() {
	cli.Execute()
}
