package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medtrack/internal/alert"
	"medtrack/internal/apiclient"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	apiURL := env("API_URL", "http://localhost:8080")

	client, err := apiclient.New(apiURL, apiclient.DefaultTimeout)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	engine := alert.NewEngine(alert.Config{
		Tick:       envDuration("ALERT_TICK", alert.DefaultTick),
		WarnWindow: envDuration("ALERT_WARN_WINDOW", alert.DefaultWarnWindow),
		DueWindow:  envDuration("ALERT_DUE_WINDOW", alert.DefaultDueWindow),
	}, &alert.ConsoleSink{}, client)

	runner := alert.NewRunner(engine, client)
	if err := runner.Start(); err != nil {
		log.Fatalf("alert loop: %v", err)
	}
	defer runner.Stop()

	log.Printf("watching reminders at %s (tick %s)", apiURL, engine.Config().Tick)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down")
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
