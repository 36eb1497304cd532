package chat

import (
	"context"
	"log"
	"net/http"

	"docildos/internal/agents"
	"docildos/internal/monitoring"

	"github.com/gin-gonic/gin"
)

const internalErrorReply = "Desculpe, ocorreu um erro ao processar sua mensagem. Verifique os logs do servidor para mais detalhes."

// Processor runs one chat turn to its terminal response
type Processor interface {
	ProcessMessage(ctx context.Context, message, sessionID string) agents.ChatResult
}

// ChatMessage is the inbound chat request body
type ChatMessage struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id"`
}

// ChatResponse is the chat response body. Cards and actions are reserved
// for richer clients and currently always null.
type ChatResponse struct {
	Response             string                   `json:"response"`
	Cards                []map[string]interface{} `json:"cards"`
	Actions              []map[string]interface{} `json:"actions"`
	RequiresConfirmation bool                     `json:"requires_confirmation"`
	ConfirmationQuestion string                   `json:"confirmation_question"`
}

// Server exposes the chat assistant over HTTP and websocket
type Server struct {
	router    *gin.Engine
	processor Processor
	monitor   *monitoring.Monitor
}

// NewServer creates a new chat server instance
func NewServer(processor Processor, monitor *monitoring.Monitor) *Server {
	server := &Server{
		router:    gin.Default(),
		processor: processor,
		monitor:   monitor,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Docildos assistant is running"})
	})
	s.router.GET("/ws", s.handleWebSocket)

	api := s.router.Group("/api")
	{
		api.POST("/chat", s.handleChat)
		api.GET("/metrics", s.handleMetrics)
	}
}

// Router returns the Gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// handleChat runs one turn. Whatever happens inside the turn, the caller
// gets a rendered string and a 200; unexpected failures degrade to a fixed
// apology instead of a 5xx.
func (s *Server) handleChat(c *gin.Context) {
	var req ChatMessage
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("chat turn panic: %v", r)
			c.JSON(http.StatusOK, ChatResponse{Response: internalErrorReply})
		}
	}()

	result := s.processor.ProcessMessage(c.Request.Context(), req.Message, req.SessionID)
	c.JSON(http.StatusOK, toChatResponse(result))
}

// handleMetrics returns the monitor snapshot
func (s *Server) handleMetrics(c *gin.Context) {
	if s.monitor == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, s.monitor.GetMetrics())
}

func toChatResponse(result agents.ChatResult) ChatResponse {
	return ChatResponse{
		Response:             result.Response,
		RequiresConfirmation: result.RequiresConfirmation,
		ConfirmationQuestion: result.ConfirmationQuestion,
	}
}
