package agents

import (
	"context"
	"time"

	"docildos/internal/backend"
	"docildos/internal/providers"
)

// fakeBackend is a scriptable Backend double. Unset functions return empty
// results. It records the filters it was called with.
type fakeBackend struct {
	listOrdersFn    func(filter backend.OrderFilter) ([]backend.Order, error)
	listRecipesFn   func(name string) ([]backend.Recipe, error)
	getRecipeFn     func(id int) (*backend.Recipe, error)
	listStockFn     func(filter backend.StockFilter) ([]backend.StockEntry, error)
	listMovementsFn func(filter backend.MovementFilter) ([]backend.StockMovement, error)
	listScheduleFn  func(start, end string) ([]backend.DeliverySlot, error)

	orderFilters    []backend.OrderFilter
	recipeNames     []string
	recipeIDs       []int
	stockFilters    []backend.StockFilter
	scheduleRanges  [][2]string
	movementFilters []backend.MovementFilter
}

func (f *fakeBackend) ListOrders(_ context.Context, filter backend.OrderFilter) ([]backend.Order, error) {
	f.orderFilters = append(f.orderFilters, filter)
	if f.listOrdersFn != nil {
		return f.listOrdersFn(filter)
	}
	return nil, nil
}

func (f *fakeBackend) ListRecipes(_ context.Context, name string) ([]backend.Recipe, error) {
	f.recipeNames = append(f.recipeNames, name)
	if f.listRecipesFn != nil {
		return f.listRecipesFn(name)
	}
	return nil, nil
}

func (f *fakeBackend) GetRecipe(_ context.Context, id int) (*backend.Recipe, error) {
	f.recipeIDs = append(f.recipeIDs, id)
	if f.getRecipeFn != nil {
		return f.getRecipeFn(id)
	}
	return &backend.Recipe{ID: id}, nil
}

func (f *fakeBackend) ListStock(_ context.Context, filter backend.StockFilter) ([]backend.StockEntry, error) {
	f.stockFilters = append(f.stockFilters, filter)
	if f.listStockFn != nil {
		return f.listStockFn(filter)
	}
	return nil, nil
}

func (f *fakeBackend) ListMovements(_ context.Context, filter backend.MovementFilter) ([]backend.StockMovement, error) {
	f.movementFilters = append(f.movementFilters, filter)
	if f.listMovementsFn != nil {
		return f.listMovementsFn(filter)
	}
	return nil, nil
}

func (f *fakeBackend) ListSchedule(_ context.Context, start, end string) ([]backend.DeliverySlot, error) {
	f.scheduleRanges = append(f.scheduleRanges, [2]string{start, end})
	if f.listScheduleFn != nil {
		return f.listScheduleFn(start, end)
	}
	return nil, nil
}

// callCount returns how many data service calls the fake received
func (f *fakeBackend) callCount() int {
	return len(f.orderFilters) + len(f.recipeNames) + len(f.recipeIDs) +
		len(f.stockFilters) + len(f.scheduleRanges) + len(f.movementFilters)
}

// fakeOracle is a scriptable Provider double
type fakeOracle struct {
	classifyReply string
	chatReply     string
	err           error

	systemPrompts []string
}

func (f *fakeOracle) Complete(_ context.Context, systemPrompt string, _ []providers.Message) (string, error) {
	f.systemPrompts = append(f.systemPrompts, systemPrompt)
	if f.err != nil {
		return "", f.err
	}
	// First call is the classification, later ones the free-form reply.
	if len(f.systemPrompts) == 1 && f.classifyReply != "" {
		return f.classifyReply, nil
	}
	if f.chatReply != "" {
		return f.chatReply, nil
	}
	return f.classifyReply, nil
}

func (f *fakeOracle) IsAvailable() bool { return true }
func (f *fakeOracle) Name() string      { return "fake" }

// fixedNow pins handler clocks to a known day
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
