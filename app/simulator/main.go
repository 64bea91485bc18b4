package main

import (
	"os"

	"aidMatch/app/simulator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
