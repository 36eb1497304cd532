package agents

import (
	"context"
	"strings"

	"docildos/internal/backend"
)

const inventoryFallback = "Não entendi o que você quer fazer com estoque. Pode reformular?"

// CostSummary is the result of the stock valuation branch
type CostSummary struct {
	Total float64 `json:"custo_total"`
	Items int     `json:"itens"`
}

// InventoryHandler maps free text to stock queries
type InventoryHandler struct {
	backend Backend
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(be Backend) *InventoryHandler {
	return &InventoryHandler{backend: be}
}

// Handle detects the intent of the message and executes it. Branch order
// matters: low-stock and valuation cues win over the full listing.
func (h *InventoryHandler) Handle(ctx context.Context, message string) Result {
	lower := strings.ToLower(message)

	if !strings.Contains(lower, "estoque") && !strings.Contains(lower, "tenho") && !strings.Contains(lower, "quanto") {
		return Result{Action: "consulta", Message: inventoryFallback}
	}

	switch {
	case strings.Contains(lower, "baixo") || strings.Contains(lower, "crítico") || strings.Contains(lower, "faltando"):
		entries, err := h.backend.ListStock(ctx, backend.StockFilter{LowStock: true})
		if err != nil {
			return Result{Action: "listar_baixo", Err: err.Error()}
		}
		return Result{Action: "listar_baixo", Data: entries}

	case strings.Contains(lower, "custo") || strings.Contains(lower, "valor"):
		summary, err := h.totalCost(ctx)
		if err != nil {
			return Result{Action: "calcular_custo", Err: err.Error()}
		}
		return Result{Action: "calcular_custo", Data: summary}

	case strings.Contains(lower, "moviment") || strings.Contains(lower, "histórico") || strings.Contains(lower, "historico"):
		movements, err := h.backend.ListMovements(ctx, backend.MovementFilter{})
		if err != nil {
			return Result{Action: "movimentacoes", Err: err.Error()}
		}
		return Result{Action: "movimentacoes", Data: movements}

	default:
		entries, err := h.backend.ListStock(ctx, backend.StockFilter{})
		if err != nil {
			return Result{Action: "listar", Err: err.Error()}
		}
		return Result{Action: "listar", Data: entries}
	}
}

// totalCost sums quantity times unit cost across all stock entries
func (h *InventoryHandler) totalCost(ctx context.Context) (CostSummary, error) {
	entries, err := h.backend.ListStock(ctx, backend.StockFilter{})
	if err != nil {
		return CostSummary{}, err
	}

	total := 0.0
	for _, entry := range entries {
		total += entry.UnitCost * entry.Quantity
	}

	return CostSummary{Total: total, Items: len(entries)}, nil
}
