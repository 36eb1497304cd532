package agents

import (
	"fmt"
	"strconv"
	"strings"

	"docildos/internal/backend"
)

// Display caps per listing kind
const (
	maxOrdersShown  = 5
	maxRecipesShown = 10
	maxStockShown   = 10
)

// Render formats a handler result into user-facing text
func Render(node Node, res Result) string {
	if res.Err != "" {
		return res.Err
	}

	switch node {
	case NodeOrders:
		return renderOrders(res)
	case NodeRecipes:
		return renderRecipes(res)
	case NodeInventory:
		return renderInventory(res)
	case NodeCalendar:
		return renderCalendar(res)
	case NodePlanning:
		return renderPlanning(res)
	default:
		return fallbackMessage(res)
	}
}

func fallbackMessage(res Result) string {
	if res.Message != "" {
		return res.Message
	}
	return "Processado."
}

func renderOrders(res Result) string {
	if res.Action != "listar" {
		return fallbackMessage(res)
	}

	orders, _ := res.Data.([]backend.Order)
	if len(orders) == 0 {
		return "Não encontrei pedidos com esses critérios."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Encontrei %d pedido(s):\n\n", len(orders))
	for i, order := range orders {
		if i == maxOrdersShown {
			break
		}
		fmt.Fprintf(&b, "• Pedido #%d - %s - Status: %s\n", order.ID, order.Customer, order.Status)
	}
	if len(orders) > maxOrdersShown {
		fmt.Fprintf(&b, "\n... e mais %d pedido(s)", len(orders)-maxOrdersShown)
	}
	return b.String()
}

func renderRecipes(res Result) string {
	switch res.Action {
	case "obter":
		recipe, ok := res.Data.(*backend.Recipe)
		if !ok {
			return "Erro ao buscar receita"
		}

		var b strings.Builder
		name := recipe.Name
		if name == "" {
			name = "Receita"
		}
		fmt.Fprintf(&b, "**%s**\n\n", name)
		if recipe.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", recipe.Description)
		}
		fmt.Fprintf(&b, "Tempo de preparo: %s minutos\n", orNA(recipe.PrepTime))
		fmt.Fprintf(&b, "Rendimento: %s\n\n", orDefault(recipe.Yield, "N/A"))
		b.WriteString("**Ingredientes:**\n")
		for _, ing := range recipe.Ingredients {
			fmt.Fprintf(&b, "• %s: %s %s\n", ing.IngredientName, formatQuantity(ing.Quantity), ing.Unit)
		}
		return b.String()

	case "listar":
		recipes, _ := res.Data.([]backend.Recipe)
		var b strings.Builder
		fmt.Fprintf(&b, "Encontrei %d receita(s) no cardápio:\n\n", len(recipes))
		for i, recipe := range recipes {
			if i == maxRecipesShown {
				break
			}
			fmt.Fprintf(&b, "• %s\n", orDefault(recipe.Name, "Sem nome"))
		}
		if len(recipes) > maxRecipesShown {
			fmt.Fprintf(&b, "\n... e mais %d receita(s)", len(recipes)-maxRecipesShown)
		}
		return b.String()

	default:
		return fallbackMessage(res)
	}
}

func renderInventory(res Result) string {
	switch res.Action {
	case "calcular_custo":
		summary, _ := res.Data.(CostSummary)
		return fmt.Sprintf("Custo total do estoque: R$ %.2f\nTotal de itens: %d", summary.Total, summary.Items)

	case "listar", "listar_baixo":
		entries, _ := res.Data.([]backend.StockEntry)
		if len(entries) == 0 {
			if res.Action == "listar_baixo" {
				return "Não há itens no estoque crítico"
			}
			return "Não há itens no estoque"
		}

		var b strings.Builder
		if res.Action == "listar_baixo" {
			b.WriteString("**Estoque (itens críticos):**\n\n")
		} else {
			b.WriteString("**Estoque:**\n\n")
		}
		for i, entry := range entries {
			if i == maxStockShown {
				break
			}
			fmt.Fprintf(&b, "• %s: %s %s", entry.IngredientName, formatQuantity(entry.Quantity), entry.DefaultUnit)
			if entry.UnitCost > 0 {
				fmt.Fprintf(&b, " (R$ %.2f/un)", entry.UnitCost)
			}
			b.WriteString("\n")
		}
		if len(entries) > maxStockShown {
			fmt.Fprintf(&b, "\n... e mais %d item(ns)", len(entries)-maxStockShown)
		}
		return b.String()

	case "movimentacoes":
		movements, _ := res.Data.([]backend.StockMovement)
		if len(movements) == 0 {
			return "Não há movimentações registradas."
		}

		var b strings.Builder
		b.WriteString("**Movimentações de estoque:**\n\n")
		for i, m := range movements {
			if i == maxStockShown {
				break
			}
			fmt.Fprintf(&b, "• %s - %s: %s (%s)\n", m.Date, m.IngredientName, formatQuantity(m.Quantity), m.Kind)
		}
		if len(movements) > maxStockShown {
			fmt.Fprintf(&b, "\n... e mais %d movimentação(ões)", len(movements)-maxStockShown)
		}
		return b.String()

	default:
		return fallbackMessage(res)
	}
}

func renderCalendar(res Result) string {
	if res.Action != "listar" && res.Action != "listar_dia" {
		return fallbackMessage(res)
	}

	slots, _ := res.Data.([]backend.DeliverySlot)
	if len(slots) == 0 {
		return "Não há entregas agendadas para este período."
	}

	day := res.Day
	if day == "" {
		day = "período"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Agenda de entregas (%s):**\n\n", day)
	for _, slot := range slots {
		customer := slot.Customer
		if customer == "" {
			customer = "N/A"
		}
		fmt.Fprintf(&b, "• %s - %s", slot.DateTime, customer)
		if slot.Location != "" {
			fmt.Fprintf(&b, " (%s)", slot.Location)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderPlanning(res Result) string {
	if res.Action != "gerar_lista" && res.Action != "ingredientes_pedidos" {
		return fallbackMessage(res)
	}

	list, ok := res.Data.(*ShoppingList)
	if !ok {
		return "Erro ao gerar lista"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Lista de compras (%s a %s):**\n\n", list.Period.Start, list.Period.End)
	if len(list.Items) == 0 {
		b.WriteString("Não há necessidade de compras adicionais!")
		return b.String()
	}
	for _, item := range list.Items {
		fmt.Fprintf(&b, "• %s: %s %s (necessário: %s, atual: %s)\n",
			item.Ingredient,
			formatQuantity(item.ToBuy), item.Unit,
			formatQuantity(item.Required), formatQuantity(item.Current))
	}
	return b.String()
}

func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func orNA(v int) string {
	if v == 0 {
		return "N/A"
	}
	return strconv.Itoa(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
