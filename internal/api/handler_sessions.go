package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tavrika-widget/internal/parse"
	"tavrika-widget/internal/session"
)

type startSessionRequest struct {
	Tables   string `json:"tables"`
	InitData string `json:"initData"`
}

// StartSession handles POST /api/sessions. Launch parameters may come in the
// body or, as the mini-app URL carries them, in the query string.
func (h *Handler) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "invalid request")
		return
	}
	if req.Tables == "" {
		req.Tables = c.Query("tables")
	}
	if req.InitData == "" {
		req.InitData = c.Query("initData")
	}

	s := h.sessions.Start(req.Tables, req.InitData)
	c.JSON(http.StatusCreated, s.Snapshot())
}

// withSession resolves :id or aborts with 404.
func (h *Handler) withSession(next func(c *gin.Context, s *session.Session)) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := h.sessions.Get(c.Param("id"))
		if err != nil {
			fail(c, err, nil)
			return
		}
		next(c, s)
	}
}

// GetSession handles GET /api/sessions/:id.
func (h *Handler) GetSession(c *gin.Context, s *session.Session) {
	c.JSON(http.StatusOK, s.Snapshot())
}

// AbandonSession handles DELETE /api/sessions/:id.
func (h *Handler) AbandonSession(c *gin.Context) {
	if err := h.sessions.Abandon(c.Param("id")); err != nil {
		fail(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

type dateTimeRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time"`
}

// SetDateTime handles PUT /api/sessions/:id/datetime. An empty time clears
// the pick. A rejected pick answers 422 with the session attached.
func (h *Handler) SetDateTime(c *gin.Context, s *session.Session) {
	var req dateTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	date, err := parse.ParseDate(req.Date, h.sessions.Policy().Location)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var at *parse.Clock
	if req.Time != "" {
		t, err := parse.ParseClock(req.Time)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		at = &t
	}

	if err := s.SetDateTime(c.Request.Context(), date, at); err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// dateParam reads ?date=, defaulting to the session's draft date.
func (h *Handler) dateParam(c *gin.Context, s *session.Session) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return s.Draft().Date, true
	}
	date, err := parse.ParseDate(raw, h.sessions.Policy().Location)
	if err != nil {
		badRequest(c, err.Error())
		return time.Time{}, false
	}
	return date, true
}

// GetHours handles GET /api/sessions/:id/hours.
func (h *Handler) GetHours(c *gin.Context, s *session.Session) {
	date, ok := h.dateParam(c, s)
	if !ok {
		return
	}

	p := h.sessions.Policy()
	w := p.BusinessHoursFor(date)
	resp := gin.H{
		"date":    parse.FormatDate(date),
		"open":    w.Open,
		"close":   w.Close,
		"hours":   p.AvailableHours(date),
		"isToday": p.IsToday(date),
	}
	if p.IsToday(date) {
		if slot, ok := p.FirstSlot(); ok {
			resp["firstSlot"] = slot.String()
		} else {
			resp["firstSlot"] = nil
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetMinutes handles GET /api/sessions/:id/minutes.
func (h *Handler) GetMinutes(c *gin.Context, s *session.Session) {
	date, ok := h.dateParam(c, s)
	if !ok {
		return
	}
	hour, err := strconv.Atoi(c.Query("hour"))
	if err != nil || hour < 0 || hour > 23 {
		badRequest(c, "hour must be between 0 and 23")
		return
	}

	c.JSON(http.StatusOK, gin.H{"minutes": h.sessions.Policy().AvailableMinutes(date, hour)})
}

// OpenTablePicker handles POST /api/sessions/:id/picker.
func (h *Handler) OpenTablePicker(c *gin.Context, s *session.Session) {
	if err := s.OpenTablePicker(); err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// GetLayout handles GET /api/sessions/:id/layout.
func (h *Handler) GetLayout(c *gin.Context, s *session.Session) {
	c.JSON(http.StatusOK, s.Layout())
}

type selectTableRequest struct {
	TableID string `json:"tableId" binding:"required"`
}

// SelectTable handles POST /api/sessions/:id/table.
func (h *Handler) SelectTable(c *gin.Context, s *session.Session) {
	var req selectTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	limits, err := s.SelectTable(req.TableID)
	if err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": s.Snapshot(), "limits": limits})
}

type guestsRequest struct {
	Count *int `json:"count"`
	Delta *int `json:"delta"`
}

// SetGuests handles PUT /api/sessions/:id/guests with either an absolute
// count or a delta.
func (h *Handler) SetGuests(c *gin.Context, s *session.Session) {
	var req guestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}
	if (req.Count == nil) == (req.Delta == nil) {
		badRequest(c, "exactly one of count or delta is required")
		return
	}

	var err error
	if req.Count != nil {
		_, err = s.SetGuests(*req.Count)
	} else {
		_, err = s.AdjustGuests(*req.Delta)
	}
	if err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// ConfirmGuests handles POST /api/sessions/:id/guests/confirm.
func (h *Handler) ConfirmGuests(c *gin.Context, s *session.Session) {
	if _, err := s.ConfirmGuests(); err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// Review handles POST /api/sessions/:id/review.
func (h *Handler) Review(c *gin.Context, s *session.Session) {
	summary, err := s.Review()
	if err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "session": s.Snapshot()})
}

// Submit handles POST /api/sessions/:id/submit.
func (h *Handler) Submit(c *gin.Context, s *session.Session) {
	out, err := h.sessions.Submit(c.Request.Context(), s.ID())
	if err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"receipt": out.Receipt,
		"payload": out.Payload,
		"bridge":  out.Bridge,
	})
}

// Close handles POST /api/sessions/:id/close.
func (h *Handler) Close(c *gin.Context, s *session.Session) {
	if err := s.Close(); err != nil {
		fail(c, err, s)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}
