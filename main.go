package main

import (
	"log"

	"github.com/thiagokokada/gitweb-go/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("gitweb-go: %v", err)
	}
}
