package main

import (
	"os"

	"github.com/ivost9/incidents-backend/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
