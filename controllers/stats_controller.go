package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daypulse/daypulse/checkin"
	"github.com/daypulse/daypulse/utils"
)

// StatsController serves the per-user statistics snapshot and the calendar
// heatmap backing the dashboard.
type StatsController struct {
	svc *checkin.Service
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(svc *checkin.Service) *StatsController {
	return &StatsController{svc: svc}
}

// GetStats returns the user's statistics snapshot: current and longest
// streak, total check-ins, 7/30-day averages and the last check-in date.
// The snapshot is cached in Redis and invalidated after each successful
// submission; a failed submission never touches the cache.
func (s *StatsController) GetStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	key := statsCacheKey(userID)
	if b, ok := utils.CacheGetBytes(key); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	stats, err := s.svc.Stats(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to compute stats")
		return
	}

	// Cache the full response envelope so hits can be served verbatim.
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: stats}
	utils.CacheSetJSON(key, wrapper, time.Hour)

	utils.Success(ctx, stats)
}

// heatmapCell is one day of the consistency heatmap. Score is 0 for days
// without a check-in, mirroring how the dashboard shades empty cells.
type heatmapCell struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// GetHeatmap returns one cell per calendar day for the past N days
// (default 365), oldest first, with each scored day carrying its overall
// average.
func (s *StatsController) GetHeatmap(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	days := 365
	if v := ctx.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 731 {
			utils.Error(ctx, http.StatusBadRequest, 40025, "days must be between 1 and 731")
			return
		}
		days = n
	}

	today := s.svc.Now()
	start := today.AddDate(0, 0, -(days - 1))

	recs, err := s.svc.Range(ctx.Request.Context(), userID, checkin.FormatDate(start), checkin.FormatDate(today))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to query check-ins")
		return
	}

	scores := make(map[string]float64, len(recs))
	for _, rec := range recs {
		scores[rec.Date] = rec.AverageScore
	}

	cells := make([]heatmapCell, 0, days)
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		date := checkin.FormatDate(day)
		cells = append(cells, heatmapCell{Date: date, Score: scores[date]})
	}

	utils.Success(ctx, gin.H{"cells": cells})
}
