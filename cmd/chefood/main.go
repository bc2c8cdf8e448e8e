package main

import "github.com/chefood/backend/internal/cli"

func main() {
	cli.Execute()
}
