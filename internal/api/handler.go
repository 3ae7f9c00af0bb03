package api

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tavrika-widget/internal/hours"
	"tavrika-widget/internal/layout"
	"tavrika-widget/internal/session"
	"tavrika-widget/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	sessions *session.Manager
	store    store.Store
	webpush  *webpush.Options
	layout   *layout.Engine
	logger   *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(sessions *session.Manager, s store.Store, webpushOptions *webpush.Options, engine *layout.Engine, logger *zap.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		store:    s,
		webpush:  webpushOptions,
		layout:   engine,
		logger:   logger,
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *hours.ValidationError
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrUnknownTable), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrDeliveryFailed):
		return http.StatusBadGateway
	case errors.Is(err, session.ErrNoTimeSelected),
		errors.Is(err, session.ErrNoEligibleTables),
		errors.Is(err, session.ErrPickerClosed),
		errors.Is(err, session.ErrOccupancyLoading),
		errors.Is(err, session.ErrTableUnavailable),
		errors.Is(err, session.ErrSubmitInProgress),
		errors.Is(err, session.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail aborts with the mapped status. When s is known the current snapshot
// goes along so the front end can redraw without another round trip.
func fail(c *gin.Context, err error, s *session.Session) {
	c.Error(err)
	body := gin.H{"error": err.Error()}
	if s != nil {
		body["session"] = s.Snapshot()
	}
	c.AbortWithStatusJSON(statusFor(err), body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
