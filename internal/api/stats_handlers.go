package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"licznik-schodow/internal/stats"
)

// @Summary      Get leaderboard stats
// @Description  Computes the challenge snapshot for the current instant: best and worst climbers of the running week and month, newest challenger, headcount, and the top-two monthly comparison.
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  stats.Snapshot
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /stats [get]
func (s *Server) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.stats.ComputeStats(r.Context(), time.Now())
	if err != nil {
		if errors.Is(err, stats.ErrNoChallengers) {
			http.Error(w, "No challengers registered yet", http.StatusInternalServerError)
			return
		}
		log.Printf("ERROR: Failed to compute stats: %v", err)
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
