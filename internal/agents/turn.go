package agents

import (
	"context"

	"docildos/internal/backend"
	"docildos/internal/providers"
)

// Node identifies a node of the routing graph
type Node string

const (
	NodeSupervisor      Node = "supervisor"
	NodeOrders          Node = "orders"
	NodeRecipes         Node = "recipes"
	NodeInventory       Node = "inventory"
	NodeCalendar        Node = "calendar"
	NodePlanning        Node = "planning"
	NodeSupervisorFinal Node = "supervisor_final"
	NodeEnd             Node = "end"
)

// Turn carries the state of one exchange through the routing graph. It is
// created per inbound message and discarded after the terminal response is
// extracted; nothing persists across turns.
type Turn struct {
	Messages             []providers.Message
	Next                 Node
	RequiresConfirmation bool
	ConfirmationQuestion string
}

// NewTurn creates the initial turn state for an inbound message
func NewTurn(message string) *Turn {
	return &Turn{
		Messages: []providers.Message{
			{Role: "user", Content: message},
		},
		Next: NodeSupervisor,
	}
}

// Result is the structured outcome of a domain handler
type Result struct {
	Action               string
	Data                 interface{}
	Message              string
	Err                  string
	Day                  string
	RequiresConfirmation bool
	ConfirmationQuestion string
}

// ChatResult is the terminal response of one turn
type ChatResult struct {
	Response             string `json:"response"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
	ConfirmationQuestion string `json:"confirmation_question"`
}

// Backend is the subset of the data service client used by the domain
// handlers. It is an interface so tests can substitute a double.
type Backend interface {
	ListOrders(ctx context.Context, filter backend.OrderFilter) ([]backend.Order, error)
	ListRecipes(ctx context.Context, name string) ([]backend.Recipe, error)
	GetRecipe(ctx context.Context, id int) (*backend.Recipe, error)
	ListStock(ctx context.Context, filter backend.StockFilter) ([]backend.StockEntry, error)
	ListMovements(ctx context.Context, filter backend.MovementFilter) ([]backend.StockMovement, error)
	ListSchedule(ctx context.Context, startDate, endDate string) ([]backend.DeliverySlot, error)
}
