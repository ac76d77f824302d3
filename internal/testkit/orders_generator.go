package testkit

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"sheetpivot/domain/sheet"
)

// OrdersHeader is the header row written by OrdersGenerator
var OrdersHeader = []any{"Order", "Customer", "Region", "Amount", "Paid"}

// OrdersGeneratorConfig configures the synthetic orders sheet
type OrdersGeneratorConfig struct {
	Rows       int      `json:"rows"`
	Customers  []string `json:"customers"`
	Regions    []string `json:"regions"`
	BlankRate  float64  `json:"blank_rate"`  // chance that a cell is left empty
	RaggedRate float64  `json:"ragged_rate"` // chance that a row stops early
	SpacerRate float64  `json:"spacer_rate"` // chance of an empty row between orders
	Seed       int64    `json:"seed"`
}

// DefaultOrdersConfig returns a small, deterministic configuration
func DefaultOrdersConfig() OrdersGeneratorConfig {
	return OrdersGeneratorConfig{
		Rows:       200,
		Customers:  []string{"Ann", "Bo", "Cy", "Dee", "Eli"},
		Regions:    []string{"North", "South", "East", "West"},
		BlankRate:  0.05,
		RaggedRate: 0.1,
		SpacerRate: 0.02,
		Seed:       42,
	}
}

// OrdersGenerator builds ragged order sheets for exercising the pivot
type OrdersGenerator struct {
	config OrdersGeneratorConfig
	rng    *rand.Rand
}

// NewOrdersGenerator creates a new generator
func NewOrdersGenerator(config OrdersGeneratorConfig) *OrdersGenerator {
	return &OrdersGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns a grid with the header in row 0 followed by the orders.
// Customer names are written in mixed case.
func (g *OrdersGenerator) Generate() *sheet.Grid {
	grid := sheet.NewGrid("orders")
	grid.SetRow(0, OrdersHeader...)

	row := 1
	for i := 0; i < g.config.Rows; i++ {
		if g.rng.Float64() < g.config.SpacerRate {
			row++ // empty spacer row
		}
		grid.SetRow(row, g.orderRow(i)...)
		row++
	}
	grid.SetRowCount(row)
	return grid
}

func (g *OrdersGenerator) orderRow(i int) []any {
	values := []any{
		fmt.Sprintf("ORD-%05d", i+1),
		g.caseVariant(g.pick(g.config.Customers)),
		g.pick(g.config.Regions),
		math.Round(g.rng.Float64()*50000) / 100,
		g.rng.Float64() < 0.7,
	}

	// the order id is always present so rows never vanish completely
	for col := 1; col < len(values); col++ {
		if g.rng.Float64() < g.config.BlankRate {
			values[col] = nil
		}
	}
	if g.rng.Float64() < g.config.RaggedRate {
		values = values[:1+g.rng.Intn(len(values)-1)]
	}
	return values
}

func (g *OrdersGenerator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

func (g *OrdersGenerator) caseVariant(s string) string {
	switch g.rng.Intn(3) {
	case 0:
		return s
	case 1:
		return strings.ToUpper(s)
	default:
		return strings.ToLower(s)
	}
}
