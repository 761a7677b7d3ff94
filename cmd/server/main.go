package main

import (
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/himanishpuri/SimpleNote/pkg/simplenote"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/export"
	"github.com/himanishpuri/SimpleNote/pkg/simplenote/render"
)

var (
	port           int
	dbPath         string
	allowedOrigins string
	systemBreak    int
	tempo          int
	logRequests    bool
)

func init() {
	// .env must be loaded before the flag defaults read the environment.
	_ = godotenv.Load()

	flag.IntVar(&port, "port", getEnvInt("SIMPLENOTE_PORT", 8000), "HTTP server port")
	flag.StringVar(&dbPath, "db", getEnvOrDefault("SIMPLENOTE_DB_PATH", "simplenote.sqlite3"), "Path to SQLite database")
	flag.StringVar(&allowedOrigins, "origins", getEnvOrDefault("SIMPLENOTE_ORIGINS", "*"), "Comma-separated list of allowed CORS origins (use * for all)")
	flag.IntVar(&systemBreak, "system-break", export.DefaultSystemBreak, "Measures per system in exported scores")
	flag.IntVar(&tempo, "tempo", export.DefaultTempo, "Tempo (bpm) written on exported measures")
	flag.BoolVar(&logRequests, "log-requests", true, "Log every HTTP request")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func main() {
	flag.Parse()

	var origins []string
	if allowedOrigins == "*" {
		origins = []string{"*"}
	} else {
		for _, o := range strings.Split(allowedOrigins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	service, err := simplenote.NewService(
		simplenote.WithDBPath(dbPath),
		simplenote.WithSystemBreak(systemBreak),
		simplenote.WithTempo(tempo),
		simplenote.WithGenerator(render.NewLocal()),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	config := &ServerConfig{
		Port:           port,
		DBPath:         dbPath,
		AllowedOrigins: origins,
		LogRequests:    logRequests,
	}

	server := NewServer(service, config)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
