package notification

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostel-income-backend/internal/model"
)

// mockSender is a mock implementation of the Sender interface.
type mockSender struct {
	SendFunc func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return m.SendFunc(payload, sub, options)
}

// mockStore is a mock implementation of the store.Store interface.
type mockStore struct {
	db   *gorm.DB
	subs []model.PushSubscription
	err  error
}

func (m *mockStore) DB() *gorm.DB { return m.db }
func (m *mockStore) SaveReportRun(ctx context.Context, run *model.ReportRun) error {
	return nil
}
func (m *mockStore) ListReportRuns(ctx context.Context, ownerID string, limit int) ([]model.ReportRun, error) {
	return nil, nil
}
func (m *mockStore) GetReportRun(ctx context.Context, id uint) (*model.ReportRun, error) {
	return nil, nil
}
func (m *mockStore) SubscriptionsForOwner(ctx context.Context, ownerID string) ([]model.PushSubscription, error) {
	return m.subs, m.err
}

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

func TestWorkerPool_Dispatch(t *testing.T) {
	wp := NewWorkerPool(1, &mockStore{}, &webpush.Options{}, nil)

	wp.Dispatch(PendingAlert{OwnerID: "owner-1", PendingTotal: 2500})

	select {
	case alert := <-wp.Jobs():
		assert.Equal(t, "owner-1", alert.OwnerID)
		assert.Equal(t, float64(2500), alert.PendingTotal)
	case <-time.After(1 * time.Second):
		t.Fatal("timed out waiting for alert to be dispatched")
	}
}

func TestWorkerPool_SendsToEachSubscriber(t *testing.T) {
	ms := &mockStore{
		subs: []model.PushSubscription{
			{Endpoint: "https://push.example/a", P256DH: "k1", Auth: "a1", OwnerID: "owner-1"},
			{Endpoint: "https://push.example/b", P256DH: "k2", Auth: "a2", OwnerID: "owner-1"},
		},
	}
	wp := NewWorkerPool(1, ms, &webpush.Options{}, nil)

	var mu sync.Mutex
	var sent []string
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			mu.Lock()
			sent = append(sent, sub.Endpoint)
			mu.Unlock()
			assert.Contains(t, string(payload), "Pending dues")
			return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(bytes.NewReader(nil))}, nil
		},
	}

	wp.sendAlertToSubscribers(context.Background(), PendingAlert{
		OwnerID:      "owner-1",
		Hostel:       "Sunrise PG",
		PendingTotal: 4500,
		CountPending: 3,
		RangeStart:   "2024-02-01",
		RangeEnd:     "2024-03-31",
	})

	assert.ElementsMatch(t, []string{"https://push.example/a", "https://push.example/b"}, sent)
}

func TestWorkerPool_DeletesExpiredSubscription(t *testing.T) {
	gormDB, mock := newTestDB(t)
	ms := &mockStore{
		db: gormDB,
		subs: []model.PushSubscription{
			{Endpoint: "https://push.example/dead", P256DH: "k", Auth: "a", OwnerID: "owner-1"},
		},
	}
	wp := NewWorkerPool(1, ms, &webpush.Options{}, nil)
	wp.sender = &mockSender{
		SendFunc: func(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusGone, Body: io.NopCloser(bytes.NewReader(nil))}, nil
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "push_subscriptions"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	wp.sendAlertToSubscribers(context.Background(), PendingAlert{OwnerID: "owner-1", PendingTotal: 100, CountPending: 1})

	assert.NoError(t, mock.ExpectationsWereMet())
}
