package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mesa-boost/internal/core/domain"
	"mesa-boost/internal/core/port"
	"mesa-boost/internal/core/port/mocks"
)

type testServer struct {
	svc     *mocks.MockBoostUseCase
	ranking *mocks.MockRankingUseCase
	handler http.Handler
}

func newTestServer(t *testing.T, opts Options) *testServer {
	t.Helper()
	svc := mocks.NewMockBoostUseCase(t)
	ranking := mocks.NewMockRankingUseCase(t)
	h := NewHandler(svc, ranking, slog.New(slog.DiscardHandler), opts)
	return &testServer{svc: svc, ranking: ranking, handler: h.Router()}
}

func (s *testServer) do(method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		r.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, r)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestPurchaseCreated(t *testing.T) {
	s := newTestServer(t, Options{})
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.svc.EXPECT().
		Purchase(mock.Anything, port.PurchaseReq{ProfileID: "p1", PackageID: "boost-72h", IdempotencyKey: "k1"}).
		Return(&domain.Boost{
			ID: "b1", ProfileID: "p1", PackageID: "boost-72h", StartAt: start, EndAt: start.Add(72 * time.Hour),
			PurchasePrice: 9234, Status: domain.StatusActive, IdempotencyKey: "k1",
		}, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/boosts/purchase",
		`{"profile_id":"p1","package_id":"boost-72h"}`, map[string]string{"Idempotency-Key": "k1"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := decode[map[string]any](t, rec)
	assert.Equal(t, "b1", got["id"])
	assert.Equal(t, 9234.0, got["purchase_price"])
	assert.NotContains(t, got, "idempotency_key")
}

func TestPurchaseRejectsBadInput(t *testing.T) {
	s := newTestServer(t, Options{})

	tests := []struct {
		name   string
		body   string
		header map[string]string
	}{
		{name: "malformed json", body: `{"profile_id":`},
		{name: "missing key", body: `{"profile_id":"p1","package_id":"x"}`},
		{name: "missing package", body: `{"profile_id":"p1","idempotency_key":"k"}`},
		{name: "key too long", body: fmt.Sprintf(`{"profile_id":"p1","package_id":"x","idempotency_key":%q}`, strings.Repeat("k", 129))},
		{name: "header and body differ", body: `{"profile_id":"p1","package_id":"x","idempotency_key":"a"}`,
			header: map[string]string{"Idempotency-Key": "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/v1/boosts/purchase", tt.body, tt.header)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestPurchaseErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		reason string
	}{
		{err: &domain.IneligibleError{Reason: domain.ReasonDailyLimit}, status: http.StatusConflict, reason: domain.ReasonDailyLimit},
		{err: domain.ErrInsufficientBalance, status: http.StatusPaymentRequired},
		{err: domain.ErrConcurrentPurchaseConflict, status: http.StatusConflict},
		{err: domain.ErrTimeout, status: http.StatusServiceUnavailable},
		{err: domain.ErrPackageNotFound, status: http.StatusNotFound},
		{err: domain.ErrProfileNotFound, status: http.StatusNotFound},
		{err: domain.ErrIdempotencyKeyReused, status: http.StatusUnprocessableEntity},
		{err: fmt.Errorf("wrapped: %w", domain.ErrInsufficientBalance), status: http.StatusPaymentRequired},
		{err: errors.New("connection reset by peer"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := newTestServer(t, Options{})
			s.svc.EXPECT().Purchase(mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := s.do(http.MethodPost, "/api/v1/boosts/purchase",
				`{"profile_id":"p1","package_id":"x","idempotency_key":"k"}`, nil)
			assert.Equal(t, tt.status, rec.Code)

			body := decode[errorResp](t, rec)
			assert.Equal(t, tt.reason, body.Reason)
			assert.NotContains(t, body.Error, "connection reset")
		})
	}
}

func TestCancel(t *testing.T) {
	s := newTestServer(t, Options{})
	s.svc.EXPECT().Cancel(mock.Anything, "p1").Return(nil).Once()
	s.svc.EXPECT().Cancel(mock.Anything, "p2").Return(domain.ErrNoActiveBoost).Once()

	rec := s.do(http.MethodPost, "/api/v1/profiles/p1/boost/cancel", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/profiles/p2/boost/cancel", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEligibilityAndStatus(t *testing.T) {
	s := newTestServer(t, Options{})
	s.svc.EXPECT().Eligibility(mock.Anything, "p1").
		Return(&domain.Eligibility{Eligible: false, Reason: domain.ReasonIncomplete}, nil).Once()
	expires := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	s.svc.EXPECT().Status(mock.Anything, "p1").Return(&port.StatusResp{
		IsActive: true, BoostID: "b1", Package: "Spotlight 72h", ExpiresAt: &expires,
		RemainingSeconds: 3600, ProgressPercent: 98.6,
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/profiles/p1/eligibility", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	el := decode[map[string]any](t, rec)
	assert.Equal(t, false, el["eligible"])
	assert.Equal(t, domain.ReasonIncomplete, el["reason"])

	rec = s.do(http.MethodGet, "/api/v1/profiles/p1/boost", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[port.StatusResp](t, rec)
	assert.True(t, st.IsActive)
	assert.Equal(t, int64(3600), st.RemainingSeconds)
	require.NotNil(t, st.ExpiresAt)
	assert.True(t, st.ExpiresAt.Equal(expires))
}

func TestHistoryParams(t *testing.T) {
	s := newTestServer(t, Options{})
	s.svc.EXPECT().History(mock.Anything, port.HistoryReq{ProfileID: "p1", Page: 2, PageSize: 5}).
		Return(&port.HistoryResp{Items: []domain.Boost{}, Page: 2, PageSize: 5, Total: 7}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/profiles/p1/boosts?page=2&page_size=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, decode[port.HistoryResp](t, rec).Total)

	rec = s.do(http.MethodGet, "/api/v1/profiles/p1/boosts?page=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRank(t *testing.T) {
	s := newTestServer(t, Options{})
	s.ranking.EXPECT().
		RankForListing(mock.Anything, domain.ListingContext{
			Category: "tutors", Region: "north", Candidates: []string{"a", "b"}, Limit: 10,
		}).
		Return([]domain.RankedProfile{{ProfileID: "b", Boosted: true, BoostID: "x"}, {ProfileID: "a"}}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/listings/rank?category=tutors&region=north&candidates=a,%20b,&limit=10", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ranked := decode[[]domain.RankedProfile](t, rec)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].ProfileID)
	assert.True(t, ranked[0].Boosted)

	rec = s.do(http.MethodGet, "/api/v1/listings/rank?limit=100000", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPackages(t *testing.T) {
	s := newTestServer(t, Options{})
	s.svc.EXPECT().Packages(mock.Anything).Return([]domain.Package{
		{ID: "boost-24h", Name: "Boost 24h", Duration: 24 * time.Hour, BasePrice: 5000},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/packages", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pkgs := decode[[]map[string]any](t, rec)
	require.Len(t, pkgs, 1)
	assert.Equal(t, "boost-24h", pkgs[0]["id"])
}

func TestWriteRateLimit(t *testing.T) {
	s := newTestServer(t, Options{WriteRPS: 0.001, WriteBurst: 1})
	s.svc.EXPECT().Cancel(mock.Anything, "p1").Return(nil).Once()
	s.svc.EXPECT().Purchase(mock.Anything, mock.Anything).Return(&domain.Boost{ID: "b2"}, nil).Twice()

	rec := s.do(http.MethodPost, "/api/v1/profiles/p1/boost/cancel", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/profiles/p1/boost/cancel", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// buckets are per profile
	rec = s.do(http.MethodPost, "/api/v1/boosts/purchase", `{"profile_id":"p2","package_id":"x","idempotency_key":"k"}`, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(http.MethodPost, "/api/v1/boosts/purchase", `{"profile_id":"p2","package_id":"x","idempotency_key":"k2"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// a retry of an admitted key still gets its stored outcome
	rec = s.do(http.MethodPost, "/api/v1/boosts/purchase", `{"profile_id":"p2","package_id":"x","idempotency_key":"k"}`, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

type recordingObserver struct {
	routes []string
}

func (o *recordingObserver) ObserveHTTP(route, method string, status int, _ time.Duration) {
	o.routes = append(o.routes, fmt.Sprintf("%s %s %d", method, route, status))
}

func TestHealthAndObserver(t *testing.T) {
	obs := &recordingObserver{}
	healthy := true
	s := newTestServer(t, Options{
		Observer: obs,
		Ready: func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("db down")
		},
	})
	s.svc.EXPECT().Status(mock.Anything, "p9").Return(&port.StatusResp{}, nil).Once()

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", "", nil).Code)
	healthy = false
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/healthz", "", nil).Code)
	s.do(http.MethodGet, "/api/v1/profiles/p9/boost", "", nil)

	assert.Equal(t, []string{
		"GET /healthz 200",
		"GET /healthz 503",
		"GET /api/v1/profiles/{profileID}/boost 200",
	}, obs.routes)
}
