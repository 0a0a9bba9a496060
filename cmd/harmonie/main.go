package main

import "github.com/lessensdelharmonie/harmonie/internal/cli"

func main() {
	cli.Execute()
}
