package backend

// Domain types exchanged with the Docildos API. Field names follow the
// backend's JSON wire format, which is in Portuguese.

// OrderStatus enumerates the order lifecycle states
type OrderStatus string

const (
	StatusNew          OrderStatus = "novo"
	StatusInProduction OrderStatus = "em_producao"
	StatusReady        OrderStatus = "pronto"
	StatusDelivered    OrderStatus = "entregue"
	StatusCancelled    OrderStatus = "cancelado"
)

// Order represents a customer order
type Order struct {
	ID           int         `json:"id"`
	Customer     string      `json:"cliente"`
	Status       OrderStatus `json:"status"`
	DeliveryDate string      `json:"data_entrega"`
	DeliveryTime string      `json:"horario,omitempty"`
	Location     string      `json:"local,omitempty"`
	Notes        string      `json:"observacoes,omitempty"`
	TotalPrice   float64     `json:"preco_total,omitempty"`
	Items        []OrderItem `json:"itens,omitempty"`
}

// OrderItem represents one line of an order
type OrderItem struct {
	ID             int     `json:"id,omitempty"`
	RecipeID       int     `json:"receita_id"`
	Quantity       float64 `json:"quantidade"`
	Unit           string  `json:"unidade,omitempty"`
	Customizations string  `json:"personalizacoes,omitempty"`
}

// Recipe represents a recipe with its ingredient list
type Recipe struct {
	ID          int                `json:"id"`
	Name        string             `json:"nome"`
	Description string             `json:"descricao,omitempty"`
	PrepTime    int                `json:"tempo_preparo,omitempty"`
	Yield       string             `json:"rendimento,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredientes,omitempty"`
}

// RecipeIngredient represents one ingredient line of a recipe
type RecipeIngredient struct {
	IngredientID   int     `json:"ingrediente_id"`
	IngredientName string  `json:"ingrediente_nome,omitempty"`
	Quantity       float64 `json:"quantidade"`
	Unit           string  `json:"unidade"`
}

// StockEntry represents the current stock of one ingredient
type StockEntry struct {
	IngredientID   int     `json:"ingrediente_id"`
	IngredientName string  `json:"ingrediente_nome,omitempty"`
	Quantity       float64 `json:"quantidade_atual"`
	UnitCost       float64 `json:"custo_unitario,omitempty"`
	ReorderPoint   float64 `json:"ponto_reposicao"`
	DefaultUnit    string  `json:"unidade_padrao,omitempty"`
}

// MovementKind enumerates the stock movement kinds
type MovementKind string

const (
	MovementIn     MovementKind = "entrada"
	MovementOut    MovementKind = "saida"
	MovementAdjust MovementKind = "ajuste"
)

// StockMovement represents one entry in the stock movement log
type StockMovement struct {
	ID             int          `json:"id,omitempty"`
	IngredientID   int          `json:"ingrediente_id"`
	IngredientName string       `json:"ingrediente_nome,omitempty"`
	Kind           MovementKind `json:"tipo"`
	Quantity       float64      `json:"quantidade"`
	Reason         string       `json:"motivo,omitempty"`
	Date           string       `json:"data,omitempty"`
}

// DeliverySlot represents one entry of the delivery schedule
type DeliverySlot struct {
	ID          int    `json:"id,omitempty"`
	OrderID     int    `json:"pedido_id"`
	DateTime    string `json:"data_hora"`
	Location    string `json:"local,omitempty"`
	Responsible string `json:"responsavel,omitempty"`
	Customer    string `json:"pedido_cliente,omitempty"`
}

// Apply updates the stock entry with the effect of a movement, mirroring
// the data service semantics: entrada adds, saida subtracts clamped at
// zero, ajuste sets the quantity absolutely.
func (s *StockEntry) Apply(m StockMovement) {
	switch m.Kind {
	case MovementIn:
		s.Quantity += m.Quantity
	case MovementOut:
		s.Quantity -= m.Quantity
		if s.Quantity < 0 {
			s.Quantity = 0
		}
	case MovementAdjust:
		s.Quantity = m.Quantity
	}
}
