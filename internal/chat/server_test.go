package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docildos/internal/agents"
	"docildos/internal/monitoring"
)

type stubProcessor struct {
	result    agents.ChatResult
	panicWith interface{}

	lastMessage   string
	lastSessionID string
}

func (p *stubProcessor) ProcessMessage(ctx context.Context, message, sessionID string) agents.ChatResult {
	p.lastMessage = message
	p.lastSessionID = sessionID
	if p.panicWith != nil {
		panic(p.panicWith)
	}
	return p.result
}

func newTestServer(processor Processor) *Server {
	gin.SetMode(gin.TestMode)
	return NewServer(processor, monitoring.NewMonitor())
}

func postChat(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(&stubProcessor{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestChatReturnsRenderedResponse(t *testing.T) {
	processor := &stubProcessor{result: agents.ChatResult{Response: "Encontrei 2 pedido(s):"}}
	server := newTestServer(processor)

	w := postChat(t, server, `{"message": "quais pedidos para hoje?", "session_id": "abc"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Encontrei 2 pedido(s):", resp.Response)
	assert.False(t, resp.RequiresConfirmation)
	assert.Equal(t, "quais pedidos para hoje?", processor.lastMessage)
	assert.Equal(t, "abc", processor.lastSessionID)
}

func TestChatResponseKeepsNullCardsAndActions(t *testing.T) {
	server := newTestServer(&stubProcessor{result: agents.ChatResult{Response: "ok"}})

	w := postChat(t, server, `{"message": "olá"}`)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["cards"]))
	assert.Equal(t, "null", string(raw["actions"]))
}

func TestChatCarriesConfirmation(t *testing.T) {
	question := "Qual pedido você quer atualizar e para qual status? (novo, em_producao, pronto, entregue)"
	server := newTestServer(&stubProcessor{result: agents.ChatResult{
		Response:             question,
		RequiresConfirmation: true,
		ConfirmationQuestion: question,
	}})

	w := postChat(t, server, `{"message": "marcar pedido como pronto"}`)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.RequiresConfirmation)
	assert.Equal(t, question, resp.ConfirmationQuestion)
	assert.Equal(t, question, resp.Response)
}

func TestChatRejectsMissingMessage(t *testing.T) {
	server := newTestServer(&stubProcessor{})

	w := postChat(t, server, `{"session_id": "abc"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatPanicDegradesToApology(t *testing.T) {
	server := newTestServer(&stubProcessor{panicWith: "boom"})

	w := postChat(t, server, `{"message": "olá"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, internalErrorReply, resp.Response)
}

func TestMetricsEndpointExposesSnapshot(t *testing.T) {
	monitor := monitoring.NewMonitor()
	monitor.RecordTurn("orders", 5*time.Millisecond)
	gin.SetMode(gin.TestMode)
	server := NewServer(&stubProcessor{}, monitor)

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var snapshot map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Equal(t, float64(1), snapshot["turns_orders"])
	assert.Contains(t, snapshot, "uptime_seconds")
}

func TestWebSocketRoundTrip(t *testing.T) {
	server := newTestServer(&stubProcessor{result: agents.ChatResult{Response: "Processado."}})

	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ChatMessage{Message: "olá", SessionID: "ws-1"}))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp ChatResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "Processado.", resp.Response)
}

func TestWebSocketRejectsEmptyMessage(t *testing.T) {
	server := newTestServer(&stubProcessor{})

	ts := httptest.NewServer(server.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(ChatMessage{SessionID: "ws-2"}))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var resp map[string]string
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "mensagem vazia", resp["error"])
}
