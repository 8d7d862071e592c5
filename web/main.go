package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Printf("Configuration error: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.Port, "Port to serve on")
	scenesDir := flag.String("scenes", cfg.ScenesDir, "Directory of JSON scene files")
	flag.Parse()

	cfg.Port = *port
	cfg.ScenesDir = *scenesDir

	// Create and start web server
	webServer := server.NewServer(cfg)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Render a frame at http://localhost:%d/api/render?scene=default", cfg.Port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
