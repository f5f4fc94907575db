package main

import (
	"github.com/simplesurance/ciconf/internal/command"
)

func main() {
	command.Execute()
}
