package main

import (
	"log"

	"github.com/glimmersocial/glimmer/cmd/server/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		log.Fatal(err)
	}
}
