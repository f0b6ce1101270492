package main

import (
	"flag"
	"google-auth-service/internal/config"
	"google-auth-service/internal/server"
	"log"
)

func main() {
	var configPath, envFile string
	flag.StringVar(&configPath, "config", "", "path to an optional YAML config file")
	flag.StringVar(&configPath, "c", "", "shorthand for -config")
	flag.StringVar(&envFile, "env", ".env", "path to an optional dotenv file")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath, envFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
