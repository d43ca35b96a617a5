package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"matchengine/internal/config"
	"matchengine/internal/transport"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if err := godotenv.Load("../.env"); err != nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, using environment variables only")
		}
	} else {
		log.Println("loaded environment from ../.env")
	}

	log.Println("================================")
	log.Println(" MATCHENGINE - DEMO SERVER")
	log.Println("================================")

	appConfig := config.Load()
	serverCfg := appConfig.Server

	registry := prometheus.NewRegistry()
	metrics := transport.NewMetrics(registry)
	transport.SetMetrics(metrics)

	router := transport.NewRouter(transport.RouterConfig{
		Registerer:      registry,
		MaxStreamsPerIP: serverCfg.MaxConcurrentSubs,
	})

	port := strconv.Itoa(serverCfg.Port)
	addr := ":" + port

	go func() {
		log.Printf("demo server listening on http://localhost%s", addr)
		log.Printf("create a match:   POST http://localhost%s/api/matches", addr)
		log.Printf("metrics:          GET  http://localhost%s/metrics", addr)
		if err := http.ListenAndServe(addr, router); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	log.Println("server ready, press Ctrl+C to stop")
	<-quit

	log.Println("shutting down")
}
