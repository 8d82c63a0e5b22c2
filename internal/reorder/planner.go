package reorder

import (
	"math"
	"sort"

	"github.com/rogerio-castellano/warehouse-inventory/internal/models"
	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
)

func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	default:
		return 2
	}
}

// Policy holds the tunable parts of reorder planning.
type Policy struct {
	// BufferUnits is a fixed quantity added on top of the deficit.
	BufferUnits int
	// BufferFactor adds ceil(BufferFactor * minimumStock) on top of the deficit.
	BufferFactor float64
	// HighDeficitRatio is the share of minimumStock a deficit must reach to rank High.
	HighDeficitRatio float64
}

func DefaultPolicy() Policy {
	return Policy{BufferUnits: 10, BufferFactor: 0, HighDeficitRatio: 0.5}
}

func (p Policy) buffer(minimumStock int) int {
	return p.BufferUnits + int(math.Ceil(p.BufferFactor*float64(minimumStock)))
}

type SupplierRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Suggestion struct {
	ProductID              int             `json:"id"`
	SKU                    string          `json:"sku"`
	Name                   string          `json:"name"`
	Category               string          `json:"category"`
	CurrentStock           int             `json:"currentStock"`
	MinimumStock           int             `json:"minimumStock"`
	Deficit                int             `json:"deficit"`
	SuggestedOrderQuantity int             `json:"suggestedOrderQuantity"`
	EstimatedCost          decimal.Decimal `json:"estimatedCost"`
	Priority               Priority        `json:"priority"`
	Supplier               *SupplierRef    `json:"supplier,omitempty"`
}

type Planner struct {
	policy Policy
}

func NewPlanner(policy Policy) *Planner {
	return &Planner{policy: policy}
}

// Plan returns a suggestion for every active low-stock product, most urgent first.
// It does not mutate its input.
func (pl *Planner) Plan(products []models.Product) []Suggestion {
	suggestions := []Suggestion{}

	for _, p := range products {
		if !p.IsActive || !p.IsLowStock() {
			continue
		}
		suggestions = append(suggestions, pl.suggest(p))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		ri, rj := suggestions[i].Priority.rank(), suggestions[j].Priority.rank()
		if ri != rj {
			return ri < rj
		}
		return suggestions[i].Deficit > suggestions[j].Deficit
	})

	return suggestions
}

func (pl *Planner) suggest(p models.Product) Suggestion {
	deficit := max(0, p.MinimumStock-p.StockQuantity)
	quantity := deficit + pl.policy.buffer(p.MinimumStock)

	s := Suggestion{
		ProductID:              p.ID,
		SKU:                    p.SKU,
		Name:                   p.Name,
		Category:               p.Category,
		CurrentStock:           p.StockQuantity,
		MinimumStock:           p.MinimumStock,
		Deficit:                deficit,
		SuggestedOrderQuantity: quantity,
		EstimatedCost:          p.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
		Priority:               pl.priority(p, deficit),
	}
	if p.Supplier != nil {
		s.Supplier = &SupplierRef{ID: p.Supplier.ID, Name: p.Supplier.Name, Email: p.Supplier.Email}
	}
	return s
}

func (pl *Planner) priority(p models.Product, deficit int) Priority {
	switch {
	case p.StockQuantity == 0:
		return PriorityCritical
	case float64(deficit) >= pl.policy.HighDeficitRatio*float64(p.MinimumStock):
		return PriorityHigh
	default:
		return PriorityMedium
	}
}
