package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/daypulse/daypulse/checkin"
	"github.com/daypulse/daypulse/models"
	"github.com/daypulse/daypulse/utils"
)

// CheckInController handles daily check-in submission and retrieval.
type CheckInController struct {
	svc *checkin.Service
}

// NewCheckInController creates a new controller instance.
func NewCheckInController(svc *checkin.Service) *CheckInController {
	return &CheckInController{svc: svc}
}

// Submit records (or overwrites) today's check-in. The client sends its
// five answers plus the streak it last observed; the stored streak snapshot
// is preceding_streak+1 and is taken on trust, matching the product's
// existing behavior.
func (c *CheckInController) Submit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Answers         models.CheckInAnswers `json:"answers"`
		PrecedingStreak int                   `json:"preceding_streak"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	rec, err := c.svc.Submit(ctx.Request.Context(), userID, req.Answers, req.PrecedingStreak)
	if err != nil {
		if errors.Is(err, checkin.ErrInvalidAnswer) {
			utils.Error(ctx, http.StatusBadRequest, 40021, "answers must be integers from 1 to 5")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to save check-in")
		return
	}

	// The cached snapshot is stale only after a successful write.
	utils.InvalidateByPrefix(statsCacheKey(userID))

	utils.Success(ctx, rec)
}

// Today returns today's check-in, or a null record when the user has not
// checked in yet.
func (c *CheckInController) Today(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	rec, err := c.svc.Today(ctx.Request.Context(), userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load check-in")
		return
	}

	utils.Success(ctx, gin.H{
		"checked_in": rec != nil,
		"record":     rec,
	})
}

// ByDate returns the check-in for a specific date.
func (c *CheckInController) ByDate(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	date := ctx.Param("date")
	if _, err := time.Parse(checkin.DateLayout, date); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "date must be YYYY-MM-DD")
		return
	}

	rec, err := c.svc.ByDate(ctx.Request.Context(), userID, date)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load check-in")
		return
	}
	if rec == nil {
		utils.Error(ctx, http.StatusNotFound, 40420, "no check-in for that date")
		return
	}

	utils.Success(ctx, rec)
}

// Range returns check-ins between start and end inclusive, newest first.
func (c *CheckInController) Range(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	start := ctx.Query("start")
	end := ctx.Query("end")
	if _, err := time.Parse(checkin.DateLayout, start); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "start must be YYYY-MM-DD")
		return
	}
	if _, err := time.Parse(checkin.DateLayout, end); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40023, "end must be YYYY-MM-DD")
		return
	}
	if start > end {
		utils.Error(ctx, http.StatusBadRequest, 40024, "start must not be after end")
		return
	}

	recs, err := c.svc.Range(ctx.Request.Context(), userID, start, end)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to query check-ins")
		return
	}

	utils.Success(ctx, gin.H{"items": recs, "count": len(recs)})
}

func statsCacheKey(userID uint) string {
	return "cache:stats:" + strconv.Itoa(int(userID))
}
