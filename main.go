package main

import (
	"github.com/vwid-io/vwid/cmd"
)

func main() {
	cmd.Execute()
}
