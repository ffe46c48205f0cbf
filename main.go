package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nkarpov/portfolio-site-backend/api"
	"github.com/nkarpov/portfolio-site-backend/cache"
	"github.com/nkarpov/portfolio-site-backend/config"
	"github.com/nkarpov/portfolio-site-backend/database"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	cfg := config.New()

	db, err := database.Connect(config.GetString(cfg, "DATABASE_DSN", ""))
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	catalogCache, err := cache.NewCatalogCache(
		config.GetString(cfg, "REDIS_ADDRESS", ""),
		config.GetString(cfg, "REDIS_PASSWORD", ""),
		time.Duration(config.GetInt(cfg, "CATALOG_CACHE_TTL_SECONDS", 60))*time.Second,
	)
	if err != nil {
		fmt.Printf("Error connecting to redis: %v\n", err)
		os.Exit(1)
	}
	if catalogCache == nil {
		fmt.Println("Catalog cache disabled (REDIS_ADDRESS not set)")
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(database.New(db), catalogCache)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
