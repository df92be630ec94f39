package main

import "github.com/itsmostafa/pagegen/cmd"

func main() {
	cmd.Execute()
}
