package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/config"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/server"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/util"
)

var (
	port    = flag.Int("port", 0, "HTTP port (config.toml wins when it sets one explicitly)")
	devMode = flag.Bool("dev", false, "development mode")
	dataDir = flag.String("dataDir", "", "data directory (overrides config file)")
)

func main() {
	flag.Parse()

	// .env is optional; deployments without one just use config.toml.
	_ = godotenv.Load()

	fmt.Println("==========================================")
	fmt.Println("  Pocket Manager - district KPI toolkit")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	if dir, err := config.EnsureDataDir(cfg); err != nil {
		log.Printf("Failed to create data directory: %v", err)
	} else {
		fmt.Printf("Data directory: %s\n", dir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Listening on port %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		fmt.Printf("Opening browser: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("Could not open a browser, visit %s manually\n", url)
		}
	} else {
		fmt.Printf("Visit %s\n", url)
	}

	fmt.Println("\nPress Ctrl+C to stop...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	if err := srv.Close(); err != nil {
		log.Printf("Close failed: %v", err)
	}
}
