package main

import (
	"os"

	"bennypowers.dev/clampwind/internal/log"
	"bennypowers.dev/clampwind/internal/parser"
)

func main() {
	err := NewRootCmd().Execute()
	parser.ClosePools()
	if err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}
