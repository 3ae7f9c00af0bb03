package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"tavrika-widget/internal/model"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_RecordSubmission(t *testing.T) {
	testCases := []struct {
		name             string
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedErr      bool
	}{
		{
			name: "Inserted",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "submissions"`)).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "Insert fails",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "submissions"`)).
					WillReturnError(errors.New("disk full"))
				mock.ExpectRollback()
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)
			tc.mockExpectations(mock)

			err := s.RecordSubmission(context.Background(), &model.Submission{
				ID:          "0b5c8f8e-4f7c-4a63-9d36-9c7e1d1d2b11",
				SessionID:   "s-1",
				TableID:     "t-5",
				TableNumber: 5,
				Guests:      3,
				Date:        "2026-10-17",
				Time:        "19:30",
				Bridge:      "nats",
				Status:      model.SubmissionDelivered,
			})
			if tc.expectedErr {
				assert.ErrorContains(t, err, "disk full")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_ListSubmissions(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "submissions" WHERE date = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("2026-10-17", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "table_number", "guests", "date", "time", "status", "created_at"}).
			AddRow("b", 7, 2, "2026-10-17", "20:00", "delivered", now).
			AddRow("a", 3, 4, "2026-10-17", "19:00", "failed", now.Add(-time.Minute)))

	subs, err := s.ListSubmissions(context.Background(), "2026-10-17", 20)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, 7, subs[0].TableNumber)
	assert.Equal(t, model.SubmissionFailed, subs[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_UpsertSubscription(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "staff_subscriptions" .* ON CONFLICT \("endpoint"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := s.UpsertSubscription(context.Background(), &model.StaffSubscription{
		Endpoint: "https://push.example.com/1",
		P256DH:   "key",
		Auth:     "auth",
		Label:    "front desk",
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_GetSubscription(t *testing.T) {
	testCases := []struct {
		name        string
		rows        *sqlmock.Rows
		expectedErr error
	}{
		{
			name: "Found",
			rows: sqlmock.NewRows([]string{"endpoint", "p256dh", "auth", "label", "created_at"}).
				AddRow("https://push.example.com/1", "key", "auth", "bar", time.Now()),
		},
		{
			name:        "Missing",
			rows:        sqlmock.NewRows([]string{"endpoint"}),
			expectedErr: ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newTestDB(t)
			s := NewGormStore(gormDB)

			mock.ExpectQuery(`SELECT \* FROM "staff_subscriptions" WHERE endpoint = \$1 ORDER BY "staff_subscriptions"."endpoint" LIMIT \$[0-9]+`).
				WithArgs("https://push.example.com/1", 1).
				WillReturnRows(tc.rows)

			sub, err := s.GetSubscription(context.Background(), "https://push.example.com/1")
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, sub)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "bar", sub.Label)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_DeleteSubscription(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "staff_subscriptions" WHERE "staff_subscriptions"."endpoint" = $1`)).
		WithArgs("https://push.example.com/1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, s.DeleteSubscription(context.Background(), "https://push.example.com/1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ListSubscriptions(t *testing.T) {
	gormDB, mock := newTestDB(t)
	s := NewGormStore(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "staff_subscriptions"`)).
		WillReturnRows(sqlmock.NewRows([]string{"endpoint", "p256dh", "auth"}).
			AddRow("e1", "k1", "a1").
			AddRow("e2", "k2", "a2"))

	subs, err := s.ListSubscriptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
