package main

import (
	"gracefm/cmd"
)

func main() {
	cmd.Execute()
}
