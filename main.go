package main

import (
	"github.com/AzielCF/tg-relay/cmd"
)

func main() {
	cmd.Execute()
}
