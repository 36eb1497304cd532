package agents

import (
	"context"
	"strings"
	"time"

	"docildos/internal/backend"
)

const (
	ordersCreateQuestion = "Preciso de mais informações para criar o pedido. Pode me informar: cliente, itens (receita e quantidade), data de entrega e horário?"
	ordersStatusQuestion = "Qual pedido você quer atualizar e para qual status? (novo, em_producao, pronto, entregue)"
	ordersFallback       = "Não entendi o que você quer fazer com pedidos. Pode reformular?"
)

// OrdersHandler maps free text to order operations
type OrdersHandler struct {
	backend Backend
	now     func() time.Time
}

// NewOrdersHandler creates a new orders handler
func NewOrdersHandler(be Backend) *OrdersHandler {
	return &OrdersHandler{backend: be, now: time.Now}
}

// Handle detects the intent of the message and executes it. Order creation
// and status changes always pause for confirmation; free-text parsing does
// not try to extract customer, items and delivery data reliably.
func (h *OrdersHandler) Handle(ctx context.Context, message string) Result {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "criar") || strings.Contains(lower, "novo pedido"):
		return Result{
			Action:               "criar",
			RequiresConfirmation: true,
			ConfirmationQuestion: ordersCreateQuestion,
		}

	case strings.Contains(lower, "listar") || strings.Contains(lower, "mostrar") || strings.Contains(lower, "pedidos"):
		filter := h.extractFilter(lower)
		orders, err := h.backend.ListOrders(ctx, filter)
		if err != nil {
			return Result{Action: "listar", Err: err.Error()}
		}
		return Result{Action: "listar", Data: orders}

	case strings.Contains(lower, "status") || strings.Contains(lower, "marcar"):
		return Result{
			Action:               "atualizar_status",
			RequiresConfirmation: true,
			ConfirmationQuestion: ordersStatusQuestion,
		}

	default:
		return Result{Action: "consulta", Message: ordersFallback}
	}
}

// extractFilter pulls coarse date-range and status filters from the message
func (h *OrdersHandler) extractFilter(lower string) backend.OrderFilter {
	filter := backend.OrderFilter{}
	today := h.now()

	if strings.Contains(lower, "hoje") {
		filter.StartDate = today.Format(dateFormat)
		filter.EndDate = today.Format(dateFormat)
	} else if strings.Contains(lower, "semana") {
		filter.StartDate = today.Format(dateFormat)
		filter.EndDate = today.AddDate(0, 0, 7).Format(dateFormat)
	}

	if strings.Contains(lower, "novo") {
		filter.Status = backend.StatusNew
	} else if strings.Contains(lower, "produção") {
		filter.Status = backend.StatusInProduction
	} else if strings.Contains(lower, "pronto") {
		filter.Status = backend.StatusReady
	}

	return filter
}
