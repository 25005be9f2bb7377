package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"licznik-schodow/internal/database"
)

type CreateLogRequest struct {
	Date         string `json:"date" example:"2024-06-12"`
	Upstairs     int    `json:"upstairs" example:"12"`
	Downstairs   int    `json:"downstairs" example:"8"`
	LiftUsesUp   int    `json:"liftUsesUp" example:"1"`
	LiftUsesDown int    `json:"liftUsesDown" example:"0"`
}

type CreateLogResponse struct {
	ID int64 `json:"id" example:"42"`
}

// @Summary      Log daily activity
// @Description  Stores one activity submission for the authenticated user. Submissions are additive; logging twice for the same day produces two records that are summed on read.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createLogRequest  body      CreateLogRequest  true  "Counts for one day"
// @Success      200               {object}  CreateLogResponse
// @Failure      400               {string}  string "Invalid request body or date"
// @Failure      401               {string}  string "Unauthorized"
// @Failure      500               {string}  string "Internal Server Error"
// @Router       /logs [post]
func (s *Server) CreateLogHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "Invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	params := database.CreateDailyLogParams{
		UserID:       claims.UserID,
		Date:         date,
		Upstairs:     req.Upstairs,
		Downstairs:   req.Downstairs,
		LiftUsesUp:   req.LiftUsesUp,
		LiftUsesDown: req.LiftUsesDown,
	}

	id, err := s.store.CreateDailyLog(r.Context(), params)
	if err != nil {
		http.Error(w, "Failed to log activity", http.StatusInternalServerError)
		return
	}

	eventPayload := map[string]interface{}{
		"log_id":     id,
		"username":   claims.Username,
		"date":       req.Date,
		"upstairs":   req.Upstairs,
		"downstairs": req.Downstairs,
	}
	if err := s.store.LogEvent(r.Context(), claims.UserID, "log_created", eventPayload); err != nil {
		// The submission itself succeeded; the feed will catch up on the
		// next poll.
		log.Printf("WARN: Failed to journal log_created event for user %d: %v", claims.UserID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CreateLogResponse{ID: id})
}

// @Summary      Get own logs
// @Description  Returns every submission made by the authenticated user, newest date first.
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   models.DailyLog
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /logs [get]
func (s *Server) ListOwnLogsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	logs, err := s.store.GetLogsByUserID(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

// @Summary      Get all challengers' logs
// @Description  Returns every submission of every user joined with the author's username, for the shared calendar and week views.
// @Tags         logs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   database.LogWithUsername
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /logs/all [get]
func (s *Server) ListAllLogsHandler(w http.ResponseWriter, r *http.Request) {
	logs, err := s.store.GetAllLogsWithUsernames(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}
