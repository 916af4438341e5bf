package main

import (
	"log"
)

func main() {
	log.SetFlags(log.Lshortfile)
	Execute()
}
