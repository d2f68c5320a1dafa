package main

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/dealfit/internal/model"
	"github.com/sells-group/dealfit/internal/scoring"
	"github.com/sells-group/dealfit/internal/store"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }

// stubStore implements store.Store for handler tests.
type stubStore struct {
	deal    *model.Deal
	dealErr error
	tracker *model.Tracker
	buyers  []model.Buyer
	calls   []model.CallIntelligence
}

func (s *stubStore) GetDeal(_ context.Context, id string) (*model.Deal, error) {
	if s.dealErr != nil {
		return nil, s.dealErr
	}
	if s.deal == nil || s.deal.ID != id {
		return nil, eris.Wrapf(store.ErrDealNotFound, "id %s", id)
	}
	return s.deal, nil
}

func (s *stubStore) GetTracker(_ context.Context, id string) (*model.Tracker, error) {
	if s.tracker == nil || s.tracker.ID != id {
		return nil, eris.Wrapf(store.ErrTrackerNotFound, "id %s", id)
	}
	return s.tracker, nil
}

func (s *stubStore) ListBuyers(_ context.Context, _ string, buyerIDs []string) ([]model.Buyer, error) {
	if len(buyerIDs) == 0 {
		return s.buyers, nil
	}
	want := make(map[string]struct{}, len(buyerIDs))
	for _, id := range buyerIDs {
		want[id] = struct{}{}
	}
	var out []model.Buyer
	for _, b := range s.buyers {
		if _, ok := want[b.ID]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *stubStore) ListCallIntelligence(_ context.Context, _ string) ([]model.CallIntelligence, error) {
	return s.calls, nil
}

func (s *stubStore) UpsertScore(context.Context, *model.BuyerDealScore) error { return nil }
func (s *stubStore) Migrate(context.Context) error                           { return nil }
func (s *stubStore) Close() error                                            { return nil }

func serveFixture() *stubStore {
	return &stubStore{
		deal: &model.Deal{
			ID:         "d1",
			TrackerID:  "t1",
			Name:       "Gulf Coast HVAC",
			Revenue:    ptrFloat64(15),
			Geography:  []string{"TX"},
			ServiceMix: "hvac",
		},
		tracker: &model.Tracker{ID: "t1", Name: "HVAC Tracker", Industry: "hvac"},
		buyers: []model.Buyer{
			{
				ID:                "strong",
				TrackerID:         "t1",
				PEFirmName:        "Strong Fit Partners",
				MinRevenue:        ptrFloat64(5),
				MaxRevenue:        ptrFloat64(30),
				RevenueSweetSpot:  ptrFloat64(15),
				TargetGeographies: []string{"TX"},
				ServicesOffered:   ptrString("hvac heating cooling"),
			},
			{
				ID:         "dq",
				TrackerID:  "t1",
				PEFirmName: "Too Big Capital",
				MinRevenue: ptrFloat64(100),
			},
		},
	}
}

// scoreEnvelope mirrors the scoreHandler response body.
type scoreEnvelope struct {
	Success            bool               `json:"success"`
	Error              string             `json:"error"`
	DealID             string             `json:"dealId"`
	DealName           string             `json:"dealName"`
	DealAttractiveness int                `json:"dealAttractiveness"`
	Scores             []model.BuyerScore `json:"scores"`
	Summary            scoring.Summary    `json:"summary"`
	ScoredAt           time.Time          `json:"scoredAt"`
}

func postScore(t *testing.T, st store.Store, dealID, body string) (*httptest.ResponseRecorder, scoreEnvelope) {
	t.Helper()
	engine := scoring.NewEngine(st, scoring.WithPersist(false))
	r := chi.NewRouter()
	r.Post("/api/deals/{dealID}/score", scoreHandler(engine))

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/deals/"+dealID+"/score", reader)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env scoreEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestScoreHandler_EmptyBody(t *testing.T) {
	rec, env := postScore(t, serveFixture(), "d1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, env.Success)
	assert.Equal(t, "d1", env.DealID)
	assert.Equal(t, "Gulf Coast HVAC", env.DealName)
	assert.Positive(t, env.DealAttractiveness)
	assert.False(t, env.ScoredAt.IsZero())

	require.Len(t, env.Scores, 2, "empty body scores every buyer on the tracker")
	assert.Equal(t, "strong", env.Scores[0].BuyerID)
	assert.True(t, env.Scores[1].IsDisqualified, "disqualified buyers sort last")

	assert.Equal(t, 2, env.Summary.Total)
	assert.Equal(t, 1, env.Summary.Disqualified)
}

func TestScoreHandler_BuyerFilter(t *testing.T) {
	rec, env := postScore(t, serveFixture(), "d1", `{"buyerIds":["strong"]}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, env.Scores, 1)
	assert.Equal(t, "strong", env.Scores[0].BuyerID)
	assert.Equal(t, 1, env.Summary.Total)
}

func TestScoreHandler_NotFound(t *testing.T) {
	t.Run("unknown deal", func(t *testing.T) {
		rec, env := postScore(t, serveFixture(), "missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, store.ErrDealNotFound.Error(), env.Error)
	})

	t.Run("orphaned tracker", func(t *testing.T) {
		st := serveFixture()
		st.deal.TrackerID = "orphan"
		rec, env := postScore(t, st, "d1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, store.ErrTrackerNotFound.Error(), env.Error)
	})
}

func TestScoreHandler_MalformedBody(t *testing.T) {
	rec, env := postScore(t, serveFixture(), "d1", `{"buyerIds": [`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "invalid request body", env.Error)
}

func TestScoreHandler_StoreFailure(t *testing.T) {
	st := serveFixture()
	st.dealErr = eris.New("connection refused")
	rec, env := postScore(t, st, "d1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "connection refused", env.Error)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]string{"status": "steeping"})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"steeping"}`, rec.Body.String())
}

func TestWaitForShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &http.Server{
		Handler:           http.NewServeMux(),
		ReadHeaderTimeout: time.Second,
	}
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	ctx, cancel := context.WithCancel(context.Background())
	go waitForShutdown(ctx, srv)
	cancel()

	select {
	case err := <-served:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
