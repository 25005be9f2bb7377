package api

import (
	"licznik-schodow/internal/config"
	"licznik-schodow/internal/database"
	"licznik-schodow/internal/stats"
	"licznik-schodow/internal/websocket"
)

type Server struct {
	config *config.Config
	store  *database.PostgresStore
	stats  *stats.Aggregator
	wsHub  *websocket.Hub
}

func NewServer(cfg *config.Config, store *database.PostgresStore, aggregator *stats.Aggregator, wsHub *websocket.Hub) *Server {
	return &Server{
		config: cfg,
		store:  store,
		stats:  aggregator,
		wsHub:  wsHub,
	}
}
