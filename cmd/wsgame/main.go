package main

import "github.com/mcoot/wordsearchgame-go/internal/cli"

func main() {
	cli.Execute()
}
