package main

import (
	"log"

	"github.com/MrSnakeDoc/awareness/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("❌ awareness failed: %v", err)
	}
}
