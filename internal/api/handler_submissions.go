package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tavrika-widget/internal/model"
)

const (
	defaultSubmissionLimit = 50
	maxSubmissionLimit     = 500
)

type submissionResponse struct {
	ID          string                 `json:"id"`
	SessionID   string                 `json:"session_id"`
	TableID     string                 `json:"table_id"`
	TableNumber int                    `json:"table_number"`
	Guests      int                    `json:"guests"`
	Date        string                 `json:"date"`
	Time        string                 `json:"time"`
	UserID      *int64                 `json:"user_id,omitempty"`
	UserName    string                 `json:"user_name,omitempty"`
	Bridge      string                 `json:"bridge"`
	Status      model.SubmissionStatus `json:"status"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   string                 `json:"created_at"`
}

// ListSubmissions handles GET /api/staff/submissions: the delivery journal,
// newest first.
func (h *Handler) ListSubmissions(c *gin.Context) {
	limit := defaultSubmissionLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
		limit = min(n, maxSubmissionLimit)
	}

	subs, err := h.store.ListSubmissions(c.Request.Context(), c.Query("date"), limit)
	if err != nil {
		fail(c, err, nil)
		return
	}

	resp := make([]submissionResponse, len(subs))
	for i, s := range subs {
		resp[i] = submissionResponse{
			ID:          s.ID,
			SessionID:   s.SessionID,
			TableID:     s.TableID,
			TableNumber: s.TableNumber,
			Guests:      s.Guests,
			Date:        s.Date,
			Time:        s.Time,
			UserID:      s.UserID,
			UserName:    s.UserName,
			Bridge:      s.Bridge,
			Status:      s.Status,
			Error:       s.Error,
			CreatedAt:   s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	c.JSON(http.StatusOK, gin.H{"submissions": resp})
}
