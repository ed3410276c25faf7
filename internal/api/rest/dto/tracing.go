// Package dto defines the REST wire representations. Leg payloads reuse the
// storage-level wire tags so the historical field spellings stay intact.
package dto

import (
	"time"

	"github.com/veritrace/veritrace/internal/domain"
	"github.com/veritrace/veritrace/internal/store/schema"
)

// TracingCode is the public representation of one tracing code. The inner
// code never leaves the platform; only the printed manifest embeds it.
type TracingCode struct {
	ID               string        `json:"id"`
	OuterCode        string        `json:"outer_code"`
	Factory          string        `json:"factory"`
	Owner            string        `json:"owner"`
	OrderID          string        `json:"order_id"`
	No               int           `json:"no"`
	State            domain.State  `json:"state"`
	IsEnd            bool          `json:"is_end"`
	IsFactoryTracing bool          `json:"isFactoryTracing"`
	Products         []string      `json:"products,omitempty"`
	TracingProducts  []string      `json:"tracing_products,omitempty"`
	ActiveLeg        *schema.Leg   `json:"active_leg,omitempty"`
	History          []schema.Leg  `json:"history,omitempty"`
	Revision         int64         `json:"revision"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// ListMeta echoes the pagination the listing was resolved with
type ListMeta struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Sort   string `json:"sort"`
	Count  int64  `json:"count"`
}

// ListTracingsResponse is the paginated listing envelope
type ListTracingsResponse struct {
	Data []TracingCode `json:"data"`
	Meta ListMeta      `json:"meta"`
}

// FromTracingCode converts a storage row into its wire representation
func FromTracingCode(code *schema.TracingCode) TracingCode {
	return TracingCode{
		ID:               code.ID,
		OuterCode:        code.OuterCode,
		Factory:          code.Factory,
		Owner:            code.Owner,
		OrderID:          code.OrderID,
		No:               code.No,
		State:            code.State,
		IsEnd:            code.IsEnd,
		IsFactoryTracing: code.IsFactoryTracing,
		Products:         code.Products,
		TracingProducts:  code.TracingProducts,
		ActiveLeg:        code.ActiveLegValue(),
		History:          code.History,
		Revision:         code.Revision,
		CreatedAt:        code.CreatedAt,
		UpdatedAt:        code.UpdatedAt,
	}
}

// FromTracingCodes converts a page of storage rows
func FromTracingCodes(codes []schema.TracingCode) []TracingCode {
	out := make([]TracingCode, len(codes))
	for i := range codes {
		out[i] = FromTracingCode(&codes[i])
	}
	return out
}
