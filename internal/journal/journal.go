// Package journal records every reservation hand-off and alerts staff about
// the ones that went through.
package journal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tavrika-widget/internal/model"
	"tavrika-widget/internal/session"
	"tavrika-widget/internal/store"
)

// Notifier receives delivered reservations.
type Notifier interface {
	Dispatch(sub model.Submission)
}

// Recorder is a session.Observer backed by the store.
type Recorder struct {
	store    store.Store
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewRecorder creates a recorder. notifier may be nil when push is disabled.
func NewRecorder(st store.Store, notifier Notifier, logger *zap.Logger) *Recorder {
	return &Recorder{store: st, notifier: notifier, logger: logger, now: time.Now}
}

// Delivered journals the attempt. Journal failures are logged and never
// reach the guest.
func (r *Recorder) Delivered(ctx context.Context, sessionID string, out session.Outcome, err error) {
	sub := model.Submission{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		TableID:     out.Payload.TableID,
		TableNumber: out.Payload.TableNumber,
		Guests:      out.Payload.Guests,
		Date:        out.Payload.Date,
		Time:        out.Payload.Time,
		UserID:      out.Payload.UserID,
		UserName:    out.Payload.UserName,
		Bridge:      out.Bridge,
		Status:      model.SubmissionDelivered,
		CreatedAt:   r.now(),
	}
	if err != nil {
		sub.Status = model.SubmissionFailed
		sub.Error = err.Error()
	}

	if err := r.store.RecordSubmission(context.WithoutCancel(ctx), &sub); err != nil {
		r.logger.Error("failed to journal submission", zap.String("session", sessionID), zap.Error(err))
	}

	if sub.Status == model.SubmissionDelivered && r.notifier != nil {
		r.notifier.Dispatch(sub)
	}
}
