package main

import (
	"log"

	"github.com/glimmersocial/glimmer/cmd/sweeper/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
