package main

import (
	"os"

	"flip-order-labels/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
