package main

import (
	"log"

	"github.com/weathercast/weathercast-service/internal/config"
	"github.com/weathercast/weathercast-service/internal/weathercast"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	s := weathercast.New(cfg)
	defer s.Logger.Sync()

	if err := s.Start(); err != nil {
		s.Logger.Fatalw("http server stopped", "error", err.Error())
	}
}
