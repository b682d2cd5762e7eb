package main

import (
	"github.com/simstreet/simstreet/pkg/cmd"
)

func main() {
	cmd.Execute()
}
