// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/masin009/hokm-asli/internal/auth"
	"github.com/masin009/hokm-asli/internal/config"
	"github.com/masin009/hokm-asli/internal/handlers"
	"github.com/masin009/hokm-asli/internal/middleware"
)

func main() {
	if err := auth.Init(); err != nil {
		log.Fatalf("auth init failed: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	srv := handlers.NewSessionServer(logger)

	mux := http.NewServeMux()

	// table endpoints
	mux.Handle("/session/create", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.CreateSessionHandler(srv),
	)))
	mux.Handle("/session/list", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ListSessionsHandler(srv),
	)))

	// table websocket
	mux.Handle("/session/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.SessionWSHandler(logger, srv),
	)))

	addr := ":" + config.Port()
	logger.Infof("hokm service listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
