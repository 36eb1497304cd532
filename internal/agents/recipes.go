package agents

import (
	"context"
	"fmt"
	"strings"
)

const recipesFallback = "Não entendi o que você quer fazer com receitas. Pode reformular?"

// RecipesHandler maps free text to recipe lookups
type RecipesHandler struct {
	backend Backend
}

// NewRecipesHandler creates a new recipes handler
func NewRecipesHandler(be Backend) *RecipesHandler {
	return &RecipesHandler{backend: be}
}

// Handle detects the intent of the message and executes it
func (h *RecipesHandler) Handle(ctx context.Context, message string) Result {
	lower := strings.ToLower(message)

	if !strings.Contains(lower, "ficha") && !strings.Contains(lower, "receita") && !strings.Contains(lower, "cardápio") {
		return Result{Action: "consulta", Message: recipesFallback}
	}

	name := extractRecipeName(message)
	if name == "" {
		recipes, err := h.backend.ListRecipes(ctx, "")
		if err != nil {
			return Result{Action: "listar", Err: err.Error()}
		}
		return Result{Action: "listar", Data: recipes}
	}

	recipes, err := h.backend.ListRecipes(ctx, name)
	if err != nil {
		return Result{Action: "obter", Err: err.Error()}
	}
	if len(recipes) == 0 {
		return Result{Action: "obter", Err: fmt.Sprintf("Receita '%s' não encontrada", name)}
	}

	recipe, err := h.backend.GetRecipe(ctx, recipes[0].ID)
	if err != nil {
		return Result{Action: "obter", Err: err.Error()}
	}
	return Result{Action: "obter", Data: recipe}
}

// extractRecipeName tries to pull a recipe name out of the message: first
// the tokens after a preposition ("ficha do X"), then the tokens after the
// words "receita" or "ficha". The heuristic is deliberately naive and may
// mis-extract multi-word names containing the trigger words.
func extractRecipeName(message string) string {
	words := strings.Fields(message)

	for i, word := range words {
		switch strings.ToLower(word) {
		case "do", "da", "de":
			if i+1 < len(words) {
				return strings.TrimSpace(strings.Join(words[i+1:], " "))
			}
		}
	}

	for i, word := range words {
		switch strings.ToLower(word) {
		case "receita", "ficha":
			if i+1 < len(words) {
				return strings.TrimSpace(strings.Join(words[i+1:], " "))
			}
		}
	}

	return ""
}
