package agents

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"docildos/internal/monitoring"
	"docildos/internal/providers"
)

const supervisorPrompt = `Você é um supervisor inteligente que analisa mensagens de usuários e decide qual ferramenta especializada deve ser chamada.

Ferramentas disponíveis:
- orders: Para criar, consultar, atualizar status de pedidos
- recipes: Para consultar receitas, cardápio, fichas técnicas
- inventory: Para consultar estoque, custos, movimentações
- calendar: Para consultar agenda de entregas, agendar entregas
- planning: Para planejamento de ingredientes, lista de compras, explosão de BOM

Analise a mensagem do usuário e responda APENAS com o nome da ferramenta mais apropriada (orders, recipes, inventory, calendar, planning).
Se a mensagem não se encaixar em nenhuma categoria, responda "supervisor" para que eu possa responder diretamente.

Mensagem do usuário: %s
`

const assistantPrompt = "Você é uma assistente de confeitaria amigável e prestativa. Responda de forma natural e útil."

const processFailure = "Desculpe, não consegui processar sua mensagem."

// Router classifies each inbound message into a domain handler via the
// language oracle and drives the turn to its terminal response. It holds
// no state across turns; concurrent turns are independent.
type Router struct {
	oracle    providers.Provider
	orders    *OrdersHandler
	recipes   *RecipesHandler
	inventory *InventoryHandler
	calendar  *CalendarHandler
	planning  *PlanningHandler
	monitor   *monitoring.Monitor
}

// NewRouter creates a router with its five domain handlers. The monitor
// may be nil.
func NewRouter(oracle providers.Provider, be Backend, monitor *monitoring.Monitor) *Router {
	return &Router{
		oracle:    oracle,
		orders:    NewOrdersHandler(be),
		recipes:   NewRecipesHandler(be),
		inventory: NewInventoryHandler(be),
		calendar:  NewCalendarHandler(be),
		planning:  NewPlanningHandler(be),
		monitor:   monitor,
	}
}

// ProcessMessage runs one turn through the routing graph and returns the
// terminal response. It never fails: classification errors fall back to the
// conversational responder and data service errors are rendered as text.
func (r *Router) ProcessMessage(ctx context.Context, message, sessionID string) ChatResult {
	started := time.Now()
	turn := NewTurn(message)

	turn.Next = r.classify(ctx, message)
	response := r.dispatch(ctx, turn, message)
	node := turn.Next
	turn.Next = NodeEnd

	if r.monitor != nil {
		r.monitor.RecordTurn(string(node), time.Since(started))
	}

	if response == "" {
		response = processFailure
	}
	return ChatResult{
		Response:             response,
		RequiresConfirmation: turn.RequiresConfirmation,
		ConfirmationQuestion: turn.ConfirmationQuestion,
	}
}

// classify asks the oracle for a routing label and coerces anything
// unrecognized to the conversational fallback.
func (r *Router) classify(ctx context.Context, message string) Node {
	reply, err := r.oracle.Complete(ctx, fmt.Sprintf(supervisorPrompt, message), nil)
	if err != nil {
		log.Printf("supervisor classification failed: %v", err)
		return NodeSupervisorFinal
	}

	switch Node(strings.ToLower(strings.TrimSpace(reply))) {
	case NodeOrders:
		return NodeOrders
	case NodeRecipes:
		return NodeRecipes
	case NodeInventory:
		return NodeInventory
	case NodeCalendar:
		return NodeCalendar
	case NodePlanning:
		return NodePlanning
	default:
		return NodeSupervisorFinal
	}
}

// dispatch runs the node the turn was routed to and renders its result.
// Every node is terminal.
func (r *Router) dispatch(ctx context.Context, turn *Turn, message string) string {
	var res Result
	switch turn.Next {
	case NodeOrders:
		res = r.orders.Handle(ctx, message)
	case NodeRecipes:
		res = r.recipes.Handle(ctx, message)
	case NodeInventory:
		res = r.inventory.Handle(ctx, message)
	case NodeCalendar:
		res = r.calendar.Handle(ctx, message)
	case NodePlanning:
		res = r.planning.Handle(ctx, message)
	default:
		return r.respondDirect(ctx, message)
	}

	if res.Err != "" && r.monitor != nil {
		r.monitor.RecordBackendError()
	}

	if res.RequiresConfirmation {
		turn.RequiresConfirmation = true
		turn.ConfirmationQuestion = res.ConfirmationQuestion
		return res.ConfirmationQuestion
	}

	response := Render(turn.Next, res)
	turn.Messages = append(turn.Messages, providers.Message{Role: "assistant", Content: response})
	return response
}

// respondDirect produces a free-form reply when no domain handler applies
func (r *Router) respondDirect(ctx context.Context, message string) string {
	reply, err := r.oracle.Complete(ctx, assistantPrompt, []providers.Message{
		{Role: "user", Content: message},
	})
	if err != nil {
		log.Printf("assistant reply failed: %v", err)
		return processFailure
	}
	return reply
}
