package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestWebSocketQueries(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Handler())
	defer ts.Close()

	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Query{Origin: []float64{0, 0, 0}, Direction: []float64{0, 0, 1}}))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	require.True(t, resp.Hit)
	assert.Equal(t, "ball", resp.Body.Name)

	require.NoError(t, conn.WriteJSON(Query{Origin: []float64{0, 0, 0}, Direction: []float64{0, 0, 1}, Exclude: []string{f.ball.String()}}))
	resp = Response{}
	require.NoError(t, conn.ReadJSON(&resp))
	require.True(t, resp.Hit)
	assert.Equal(t, "crate", resp.Body.Name)
	assert.InDelta(t, 10.0, resp.TIn, eps)
}

func TestWebSocketBadQueryKeepsSession(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Handler())
	defer ts.Close()

	conn := dial(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.False(t, resp.Hit)
	assert.Contains(t, resp.Error, ErrInvalidQuery.Error())

	require.NoError(t, conn.WriteJSON(Query{Origin: []float64{0, 0, 0}, Direction: []float64{0, 0, 0}}))
	resp = Response{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.NotEmpty(t, resp.Error)

	require.NoError(t, conn.WriteJSON(Query{Origin: []float64{0, 0, 0}, Direction: []float64{0, 0, 1}}))
	resp = Response{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.True(t, resp.Hit)
	assert.Empty(t, resp.Error)
}

func TestWebSocketSessionsTracked(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Handler())
	defer ts.Close()

	conn := dial(t, ts)
	require.NoError(t, conn.WriteJSON(Query{Origin: []float64{0, 0, 0}, Direction: []float64{0, 0, 1}}))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, int64(1), f.server.GetStats().Sessions)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return f.server.GetStats().Sessions == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketOversizedFrameClosesSession(t *testing.T) {
	f := newFixture(t)
	f.server.config.MaxBodySize = 128
	ts := httptest.NewServer(f.server.Handler())
	defer ts.Close()

	conn := dial(t, ts)

	require.NoError(t, conn.WriteJSON(Query{Origin: []float64{0, 0, 0}, Direction: []float64{0, 0, 1}}))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.True(t, resp.Hit)

	big := `{"origin":[0,0,0],"direction":[0,0,1],"tags":["` + strings.Repeat("x", 600) + `"]}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(big)))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseMessageTooBig), "got %v", err)

	assert.Eventually(t, func() bool {
		return f.server.GetStats().Sessions == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketRejectsUnknownFields(t *testing.T) {
	f := newFixture(t)
	ts := httptest.NewServer(f.server.Handler())
	defer ts.Close()

	conn := dial(t, ts)

	raw := `{"origin":[0,0,0],"direction":[0,0,1],"max_dist":5}`
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(raw)))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.False(t, resp.Hit)
	assert.Contains(t, resp.Error, ErrInvalidQuery.Error())
	assert.Contains(t, resp.Error, "max_dist")
}

func TestWebSocketStopClosesSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.server.Start(ctx))

	u := "ws://" + f.server.Addr().String() + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(Query{Origin: []float64{0, 0, 0}, Direction: []float64{0, 0, 1}}))
	var resp Response
	require.NoError(t, conn.ReadJSON(&resp))

	stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, f.server.Stop(stopCtx))
	assert.Equal(t, int64(0), f.server.GetStats().Sessions, "Stop waits for sessions to finish")

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketUpgradeDuringStopIsClosed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.server.Start(ctx))

	// A second listener on the same handler stays up after Stop, standing in for an
	// upgrade that completes while the server is stopping.
	ts := httptest.NewServer(f.server.Handler())
	defer ts.Close()

	require.NoError(t, f.server.Stop(ctx))

	conn := dial(t, ts)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	assert.Equal(t, int64(0), f.server.GetStats().Sessions)
}
