package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/handler"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/llmclient"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/logger"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/plan"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/pricing"
	"github.com/ManmohanSinghRaghav/Restmage-sub001/internal/repository/planstore"
)

type errGenerator struct{}

func (errGenerator) Generate(context.Context, string) (llmclient.Envelope, error) {
	return nil, llmclient.ErrMissingCredential
}

func (errGenerator) Name() string { return "none" }

func newTestServer(t *testing.T) (*httptest.Server, *plan.Broker) {
	t.Helper()
	broker := plan.NewBroker()
	log := logger.Nop()
	h := handler.New(
		planstore.New(""),
		plan.NewPipeline(errGenerator{}, log, broker),
		nil,
		pricing.NewService(),
		broker,
		log,
	)
	srv := httptest.NewServer(NewMux(h))
	t.Cleanup(srv.Close)
	return srv, broker
}

func TestMux_Healthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestMux_MetricsExposed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMux_CORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestMux_GenerateEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)

	body, _ := json.Marshal(map[string]any{
		"params": map[string]any{"plotWidth": 20, "plotLength": 30, "bedrooms": 2},
	})
	resp, err := http.Post(srv.URL+"/api/plans/generate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Provenance string `json:"provenance"`
		Warning    string `json:"warning"`
		Document   struct {
			Rooms []map[string]any `json:"rooms"`
		} `json:"document"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "generated-by-fallback", out.Provenance)
	assert.NotEmpty(t, out.Warning)
	assert.NotEmpty(t, out.Document.Rooms)
}

func TestMux_EventStreamWebsocket(t *testing.T) {
	srv, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/generations"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		defer resp.Body.Close()
	}
	defer conn.Close()

	// Give the server side a moment to register its subscription.
	time.Sleep(100 * time.Millisecond)

	// Trigger a generation so the pipeline publishes stage events.
	body, _ := json.Marshal(map[string]any{"params": map[string]any{}})
	httpResp, err := http.Post(srv.URL+"/api/plans/generate", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	httpResp.Body.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var ev plan.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, plan.StageNormalizing, ev.Stage)
	assert.NotEmpty(t, ev.RequestID)
}
