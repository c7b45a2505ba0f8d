package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"meetnote/config"
	"meetnote/pkg/api"
	"meetnote/pkg/logger"
	"meetnote/router"
)

func main() {
	// 1. Load environment variables from a .env file when one exists.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}
	logger.Init()
	defer logger.Log.Sync()

	cfg := config.Load()

	// 2. Each app talks to its own REST backend; the clients carry the base
	// URLs and everything above them is backend-agnostic.
	bookingAPI := api.New(cfg.BookingAPIURL)
	notesAPI := api.New(cfg.NotesAPIURL)

	// 3. The router wires repositories, stores and handlers and wraps the
	// whole thing in the middleware chain (CORS, request IDs, rate limit,
	// route guard).
	handler := router.Setup(bookingAPI, notesAPI)

	logger.Sugar.Infof("meetnote listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Sugar.Fatalf("server stopped: %v", err)
	}
}
