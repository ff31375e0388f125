package main

import (
	"log"

	"github.com/MrSnakeDoc/startpage/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ startpage failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ startpage stopped with error: %v", err)
	}
}
