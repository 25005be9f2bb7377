// @title           Escalera Challenge API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"licznik-schodow/internal/api"
	"licznik-schodow/internal/config"
	"licznik-schodow/internal/database"
	"licznik-schodow/internal/stats"
	"licznik-schodow/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "licznik-schodow/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	log.Println("Pomyślnie połączono z bazą danych")

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool, wsHub)
	aggregator := stats.NewAggregator(store)
	server := api.NewServer(cfg, store, aggregator, wsHub)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("https://"+cfg.AppHost+"/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Escalera Challenge API działa! Dokumentacja dostępna pod /swagger/index.html"))
	})

	r.Post("/api/v1/auth/register", server.RegisterHandler)
	r.Post("/api/v1/auth/login", server.LoginHandler)
	r.Post("/api/v1/auth/refresh", server.RefreshTokenHandler)

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(server.AuthMiddleware)
		r.Get("/me", server.GetCurrentUserHandler)
		r.Post("/logs", server.CreateLogHandler)
		r.Get("/logs", server.ListOwnLogsHandler)
		r.Get("/logs/all", server.ListAllLogsHandler)
		r.Get("/stats", server.GetStatsHandler)
		r.Get("/events", server.GetEventsHandler)
		r.Get("/sessions", server.ListSessionsHandler)
		r.Delete("/sessions/{sessionId}", server.DeleteSessionHandler)
		r.Post("/sessions/terminate_all", server.TerminateAllSessionsHandler)
	})

	log.Printf("Uruchamianie serwera na porcie :%s", cfg.Server.Port)
	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
