package restservice_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gin-gonic/gin"
	"github.com/orbital-network/auction/internal/core/application"
	"github.com/orbital-network/auction/internal/core/domain"
	"github.com/orbital-network/auction/internal/infrastructure/db"
	inmemorylivestore "github.com/orbital-network/auction/internal/infrastructure/live-store/inmemory"
	"github.com/orbital-network/auction/internal/infrastructure/metrics"
	"github.com/orbital-network/auction/internal/infrastructure/notifier"
	watermillnotifier "github.com/orbital-network/auction/internal/infrastructure/notifier/watermill"
	timescheduler "github.com/orbital-network/auction/internal/infrastructure/scheduler/gocron"
	restservice "github.com/orbital-network/auction/internal/interface/rest"
	"github.com/stretchr/testify/require"
)

const (
	secret     = "test-secret"
	controller = "controller"
	solver     = "solver"
)

var auctionConfig = domain.AuctionConfig{
	BatchSize:             1000,
	AuctionDuration:       180 * time.Second,
	FillingWindowDuration: 60 * time.Second,
	Route: domain.Route{
		OfferDomain: "neutron",
		OfferDenom:  "untrn",
		AskDomain:   "osmosis",
		AskDenom:    "uosmo",
	},
	SolverBond: domain.Coin{Denom: "untrn", Amount: 100},
}

type testServer struct {
	router *gin.Engine
	pubsub *gochannel.GoChannel
}

func setupTestRouter(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	repos, err := db.NewService(db.ServiceConfig{
		EventStoreType:   "watermill",
		DataStoreType:    "badger",
		EventStoreConfig: []interface{}{nil},
		DataStoreConfig:  []interface{}{"", nil},
	})
	require.NoError(t, err)

	pubsub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	notifierSvc, err := watermillnotifier.New(pubsub)
	require.NoError(t, err)

	m := metrics.NewMetrics()
	m.RegisterEventHandlers(repos.Events())

	appSvc, err := application.NewService(
		application.Config{Controller: controller, AllowTimeOverride: true},
		auctionConfig, repos, inmemorylivestore.NewLiveStore(), notifierSvc,
		timescheduler.NewScheduler(),
	)
	require.NoError(t, err)
	t.Cleanup(appSvc.Stop)

	return &testServer{restservice.NewRouter(appSvc, secret, m), pubsub}
}

func (s *testServer) do(
	t *testing.T, method, path, identity string, body interface{},
) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if len(identity) > 0 {
		token, err := restservice.NewToken(secret, identity, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func requireErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode[map[string]string](t, w)
	require.Equal(t, code, body["code"])
}

func TestAuctionFlow(t *testing.T) {
	srv := setupTestRouter(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	settlements, err := srv.pubsub.Subscribe(ctx, notifier.Topic(domain.MessageKindSettle))
	require.NoError(t, err)

	w := srv.do(t, http.MethodPost, "/v1/orders", controller, map[string]interface{}{
		"user": "alice", "amount": 1500,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	intent := decode[restservice.Intent](t, w)
	require.Equal(t, "neutron", intent.OfferDomain)

	now := time.Now().Unix()
	w = srv.do(t, http.MethodPost, "/v1/tick", solver, map[string]interface{}{"now": now})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tick := decode[restservice.TickResult](t, w)
	require.Nil(t, tick.Closed)
	require.NotNil(t, tick.Opened)
	require.Equal(t, uint64(1000), tick.Opened.Intents[0].Amount)

	w = srv.do(t, http.MethodGet, "/v1/orderbook?from=0&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orderbook := decode[restservice.Orderbook](t, w)
	require.Equal(t, int64(1), orderbook.Total)
	require.Equal(t, uint64(500), orderbook.Intents[0].Amount)

	w = srv.do(t, http.MethodPost, "/v1/bid", solver, map[string]interface{}{"amount": 10})
	requireErrorCode(t, w, http.StatusBadRequest, "BOND_TOO_LOW")

	w = srv.do(t, http.MethodPost, "/v1/bond", solver, map[string]interface{}{
		"denom": "untrn", "amount": 100,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodPost, "/v1/bid", solver, map[string]interface{}{"amount": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodPost, "/v1/bid", solver, map[string]interface{}{"amount": 10})
	requireErrorCode(t, w, http.StatusBadRequest, "BID_TOO_LOW")

	w = srv.do(t, http.MethodGet, "/v1/batch", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	active := decode[restservice.ActiveBatch](t, w)
	require.Equal(t, domain.Bidding.String(), active.Phase)
	require.Equal(t, uint64(1000), active.Total)
	require.Equal(t, uint64(10), active.Batch.CurrentBid.Amount)

	w = srv.do(t, http.MethodPost, "/v1/tick", solver, nil)
	requireErrorCode(t, w, http.StatusConflict, "AUCTION_NOT_EXPIRED")

	w = srv.do(t, http.MethodDelete, "/v1/bond", solver, nil)
	requireErrorCode(t, w, http.StatusConflict, "BOND_LOCKED")

	later := time.Unix(now, 0).Add(time.Hour).Unix()
	w = srv.do(t, http.MethodPost, "/v1/tick", solver, map[string]interface{}{"now": later})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tick = decode[restservice.TickResult](t, w)
	require.NotNil(t, tick.Closed)
	require.NotNil(t, tick.Settlement)
	require.Equal(t, "PENDING", tick.Settlement.Status)
	require.Equal(t, solver, tick.Settlement.Bid.Solver)
	require.NotNil(t, tick.Opened)
	require.Equal(t, uint64(500), tick.Opened.Intents[0].Amount)

	select {
	case msg := <-settlements:
		msg.Ack()
		require.Equal(t, tick.Settlement.Id, msg.UUID)
	case <-ctx.Done():
		t.Fatal("settlement message not delivered")
	}

	settlementPath := fmt.Sprintf("/v1/settlements/%s", tick.Settlement.Id)
	w = srv.do(t, http.MethodPost, settlementPath+"/confirm", solver, nil)
	requireErrorCode(t, w, http.StatusForbidden, "UNAUTHORIZED")

	w = srv.do(t, http.MethodPost, settlementPath+"/confirm", controller, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, "CONFIRMED", decode[restservice.Settlement](t, w).Status)

	w = srv.do(t, http.MethodGet, settlementPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "CONFIRMED", decode[restservice.Settlement](t, w).Status)

	w = srv.do(t, http.MethodGet, "/v1/batches/"+tick.Closed.Id, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, decode[restservice.Batch](t, w).Closed)

	w = srv.do(t, http.MethodDelete, "/v1/bond", solver, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodGet, "/v1/bond/"+solver, "", nil)
	requireErrorCode(t, w, http.StatusNotFound, "BOND_NOT_FOUND")
}

func TestAuth(t *testing.T) {
	srv := setupTestRouter(t)
	order := map[string]interface{}{"user": "alice", "amount": 10}

	w := srv.do(t, http.MethodPost, "/v1/orders", "", order)
	requireErrorCode(t, w, http.StatusUnauthorized, "AUTH_MISSING_HEADER")

	req := httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
	req.Header.Set("Authorization", "Token abc")
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	requireErrorCode(t, w, http.StatusUnauthorized, "AUTH_INVALID_FORMAT")

	forged, err := restservice.NewToken("other-secret", controller, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodPost, "/v1/orders", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	requireErrorCode(t, w, http.StatusUnauthorized, "AUTH_INVALID_TOKEN")

	w = srv.do(t, http.MethodPost, "/v1/orders", solver, order)
	requireErrorCode(t, w, http.StatusForbidden, "UNAUTHORIZED")

	w = srv.do(t, http.MethodPost, "/v1/orders", controller, order)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	_, err = restservice.NewToken(secret, "", time.Hour)
	require.Error(t, err)
}

func TestQueries(t *testing.T) {
	srv := setupTestRouter(t)

	w := srv.do(t, http.MethodGet, "/v1/info", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	info := decode[restservice.Info](t, w)
	require.Equal(t, uint64(1000), info.BatchSize)
	require.Equal(t, int64(180), info.AuctionDuration)
	require.Equal(t, domain.NoActiveBatch.String(), info.Phase)

	w = srv.do(t, http.MethodGet, "/v1/config", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cfg := decode[restservice.AuctionConfig](t, w)
	require.Equal(t, "untrn", cfg.SolverBond.Denom)
	require.Equal(t, "osmosis", cfg.Route.AskDomain)

	w = srv.do(t, http.MethodGet, "/v1/batch", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Nil(t, decode[restservice.ActiveBatch](t, w).Batch)

	w = srv.do(t, http.MethodGet, "/v1/batches/unknown", "", nil)
	requireErrorCode(t, w, http.StatusNotFound, "BATCH_NOT_FOUND")

	w = srv.do(t, http.MethodGet, "/v1/settlements/unknown", "", nil)
	requireErrorCode(t, w, http.StatusNotFound, "SETTLEMENT_NOT_FOUND")

	w = srv.do(t, http.MethodGet, "/v1/orderbook?limit=abc", "", nil)
	requireErrorCode(t, w, http.StatusBadRequest, "INVALID_REQUEST")

	w = srv.do(t, http.MethodPost, "/v1/accounts/neutron/confirm", controller, map[string]string{
		"address": "neutron1addr",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = srv.do(t, http.MethodGet, "/v1/accounts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	accounts := decode[map[string][]restservice.AccountRegistration](t, w)
	require.Len(t, accounts["accounts"], 1)
	require.Equal(t, "neutron1addr", accounts["accounts"][0].Address)

	w = srv.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = srv.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "http_requests_total")
}
