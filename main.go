package main

import (
	"log"

	"github.com/fieldops/planboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
