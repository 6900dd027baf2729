package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehranjafarii/heat-simulation-fdm/calculator"
	"github.com/mehranjafarii/heat-simulation-fdm/model"
)

func newTestHub() *Hub {
	cfg := calculator.DefaultConfig()
	return NewHub(calculator.NewCalculator(cfg), cfg.Defaults)
}

func TestHubSimulate(t *testing.T) {
	h := newTestHub()
	reply := h.handle(model.Msg{Type: TypeSimulate, Content: `{"top": 100, "bottom": 0, "nx": 80, "ny": 60}`})
	require.Equal(t, TypeSimulated, reply.Type, reply.Content)

	var p calculator.Payload
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &p))
	assert.Equal(t, 80, p.Inputs.Nx)
	assert.Equal(t, 60, p.Inputs.Ny)
	// sigma was not sent and comes from the defaults
	assert.Equal(t, 0.8, p.Inputs.Sigma)
	assert.InDelta(t, 300.0/7.0, p.T.T1, 1e-9)
	assert.Len(t, p.PlotPayload.Z, 60)
}

func TestHubSimulateDefaults(t *testing.T) {
	h := newTestHub()
	reply := h.handle(model.Msg{Type: TypeSimulate})
	require.Equal(t, TypeSimulated, reply.Type, reply.Content)
	assert.NotNil(t, h.last)
	assert.Equal(t, 160, h.last.Field.Nx())
}

func TestHubErrors(t *testing.T) {
	h := newTestHub()

	reply := h.handle(model.Msg{Type: TypeProfile})
	assert.Equal(t, TypeError, reply.Type)
	assert.Equal(t, ErrNoResult.Error(), reply.Content)

	reply = h.handle(model.Msg{Type: TypeExport})
	assert.Equal(t, TypeError, reply.Type)

	reply = h.handle(model.Msg{Type: TypeSimulate, Content: "{not json"})
	assert.Equal(t, TypeError, reply.Type)
	assert.Nil(t, h.last)

	reply = h.handle(model.Msg{Type: "start"})
	assert.Equal(t, TypeError, reply.Type)
	assert.Contains(t, reply.Content, "no such type")
}

func TestHubProfileAndExport(t *testing.T) {
	h := newTestHub()
	require.Equal(t, TypeSimulated, h.handle(model.Msg{Type: TypeSimulate, Content: `{"nx": 81, "ny": 61}`}).Type)

	reply := h.handle(model.Msg{Type: TypeProfile, Content: `{"x": 3.0}`})
	require.Equal(t, TypeProfile, reply.Type, reply.Content)
	var p model.Profile
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &p))
	assert.InDelta(t, 3.0, p.X, 1e-12)
	assert.Len(t, p.Ts, 61)
	assert.InDelta(t, h.last.T.T3, p.Ts[30], 1e-4)

	reply = h.handle(model.Msg{Type: TypeExport})
	require.Equal(t, TypeExported, reply.Type)
	var payload calculator.Payload
	require.NoError(t, json.Unmarshal([]byte(reply.Content), &payload))
	assert.Equal(t, calculator.Title, payload.Title)
}

func TestServeWs(t *testing.T) {
	cfg := calculator.DefaultConfig()
	s := NewServer(cfg.Addr, websocket.Upgrader{}, calculator.NewCalculator(cfg), cfg.Defaults)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(model.Msg{Type: TypeSimulate, Content: `{"top": 50, "bottom": 10}`}))
	require.NoError(t, conn.WriteJSON(model.Msg{Type: TypeProfile, Content: `{"x": 1.0}`}))
	require.NoError(t, conn.WriteJSON(model.Msg{Type: "bogus"}))

	var reply model.Msg
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, TypeSimulated, reply.Type)
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, TypeProfile, reply.Type)
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, TypeError, reply.Type)
}
