package main

import (
	"github.com/thesumanshah/tfnsw-assistant/cmd"
)

func main() {
	cmd.Execute()
}
