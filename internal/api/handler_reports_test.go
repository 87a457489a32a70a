package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hostel-income-backend/internal/model"
	"hostel-income-backend/internal/report"
	"hostel-income-backend/internal/upstream"
)

// memStore is an in-memory store.Store for handler tests.
type memStore struct {
	runs    []model.ReportRun
	saveErr error
}

func (m *memStore) DB() *gorm.DB { return nil }

func (m *memStore) SaveReportRun(ctx context.Context, run *model.ReportRun) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	run.ID = uint(len(m.runs) + 1)
	m.runs = append(m.runs, *run)
	return nil
}

func (m *memStore) ListReportRuns(ctx context.Context, ownerID string, limit int) ([]model.ReportRun, error) {
	return m.runs, nil
}

func (m *memStore) GetReportRun(ctx context.Context, id uint) (*model.ReportRun, error) {
	for _, r := range m.runs {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) SubscriptionsForOwner(ctx context.Context, ownerID string) ([]model.PushSubscription, error) {
	return nil, nil
}

// stubFetcher is a canned report.TreeFetcher.
type stubFetcher struct {
	tree *upstream.Tree
	err  error
}

func (s *stubFetcher) FetchTree(ctx context.Context, ownerID string) (*upstream.Tree, error) {
	return s.tree, s.err
}

func occupiedTree() *upstream.Tree {
	return &upstream.Tree{
		Hostel: &upstream.HostelDoc{Name: "Sunrise PG"},
		Floors: []upstream.FloorRooms{
			{
				FloorID:   "f1",
				FloorName: "Ground",
				Rooms: []upstream.Room{
					{RoomID: "r1", RoomName: "101", Beds: []upstream.Bed{
						{
							BedID:        "b1",
							BedName:      "Bed A",
							OccupantName: "A",
							JoinDate:     "2024-03-01",
							ActualAmount: 3000,
							AmountPaid:   1000,
						},
					}},
				},
			},
		},
	}
}

func setupReportRouter(s *memStore, fetcher *stubFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(s, report.NewEngine(fetcher, nil), nil, nil)
	r.GET("/api/owners/:owner_id/report", handler.RunReport)
	r.GET("/api/owners/:owner_id/reports", handler.ListReports)
	r.GET("/api/reports/:report_id/export", handler.ExportReport)
	r.GET("/api/owners/:owner_id/availability", handler.GetAvailability)
	return r
}

func TestRunReport_OK(t *testing.T) {
	s := &memStore{}
	router := setupReportRouter(s, &stubFetcher{tree: occupiedTree()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/owners/owner-1/report?start=2024-03-10&end=2024-03-31", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var res report.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "Sunrise PG", res.Meta.Hostel)
	assert.Equal(t, 1, res.Totals.CountAll)
	assert.Equal(t, float64(2000), res.Totals.Pending)
	require.Len(t, res.PendingEntries, 1)

	// The run was archived with the same totals and a replayable payload.
	require.Len(t, s.runs, 1)
	assert.Equal(t, float64(2000), s.runs[0].Pending)
	assert.JSONEq(t, w.Body.String(), s.runs[0].Payload)
}

func TestRunReport_InvalidRange(t *testing.T) {
	router := setupReportRouter(&memStore{}, &stubFetcher{tree: occupiedTree()})

	testCases := []struct {
		name  string
		query string
	}{
		{name: "Inverted", query: "?start=2024-04-01&end=2024-03-01"},
		{name: "Unparseable", query: "?start=whenever&end=2024-03-01"},
		{name: "Half specified", query: "?start=2024-03-01"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/api/owners/owner-1/report"+tc.query, nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRunReport_DefaultRangeWhenOmitted(t *testing.T) {
	s := &memStore{}
	router := setupReportRouter(s, &stubFetcher{tree: occupiedTree()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/owners/owner-1/report", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res report.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res.Meta.Start)
	assert.NotEmpty(t, res.Meta.End)
}

func TestRunReport_UpstreamDown(t *testing.T) {
	router := setupReportRouter(&memStore{}, &stubFetcher{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/owners/owner-1/report?start=2024-03-01&end=2024-03-31", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRunReport_NoHostel(t *testing.T) {
	router := setupReportRouter(&memStore{}, &stubFetcher{err: upstream.ErrNoHostel})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/owners/owner-1/report?start=2024-03-01&end=2024-03-31", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportReport(t *testing.T) {
	s := &memStore{}
	router := setupReportRouter(s, &stubFetcher{tree: occupiedTree()})

	// Produce and archive a run first.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/owners/owner-1/report?start=2024-03-10&end=2024-03-31", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.runs, 1)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/api/reports/1/export", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="income-report-2024-03-10_to_2024-03-31.json"`, w.Header().Get("Content-Disposition"))
	var res report.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, float64(2000), res.Totals.Pending)
}

func TestExportReport_NotFound(t *testing.T) {
	router := setupReportRouter(&memStore{}, &stubFetcher{tree: occupiedTree()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/reports/99/export", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetAvailability(t *testing.T) {
	router := setupReportRouter(&memStore{}, &stubFetcher{tree: occupiedTree()})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/owners/owner-1/availability", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var summary report.AvailabilitySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.TotalBeds)
	assert.Equal(t, 0, summary.AvailableBeds)
	assert.InDelta(t, 100.0, summary.OccupancyPct, 0.001)
}
