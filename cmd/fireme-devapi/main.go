package main

import (
	"log"

	"github.com/aussiebroadwan/fireme/internal/devapi/app"
)

//go:generate swag init -g internal/devapi/http/router.go -d ../.. -o ../../api/devapi --outputTypes go

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
