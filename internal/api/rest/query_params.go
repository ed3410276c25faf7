package rest

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/veritrace/veritrace/internal/domain"
)

const (
	// MAX_PAGE_SIZE caps the page size a caller can request
	MAX_PAGE_SIZE = 100
	// DEFAULT_PAGE_SIZE is used when no limit is given
	DEFAULT_PAGE_SIZE = 20
	// DEFAULT_SORT orders listings newest first
	DEFAULT_SORT = "-created_at"
)

// sortableColumns whitelists the listing sort keys
var sortableColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"state":      true,
	"no":         true,
}

// ListTracingsQuery holds parsed query parameters for listing tracing codes
type ListTracingsQuery struct {
	Owner   string `form:"owner"`
	Factory string `form:"factory"`
	OrderID string `form:"order_id"`
	State   string `form:"state"`
	Limit   int    `form:"limit,default=20"`
	Offset  int    `form:"offset,default=0"`
	Sort    string `form:"sort,default=-created_at"`

	// States is derived from State during validation
	States []domain.State `form:"-"`
}

// ParseListTracingsQuery parses the listing query parameters
func ParseListTracingsQuery(c *gin.Context) (*ListTracingsQuery, error) {
	var query ListTracingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}
	return &query, nil
}

// Validate checks ranges and normalizes the parsed parameters
func (q *ListTracingsQuery) Validate() error {
	if q.Limit <= 0 {
		q.Limit = DEFAULT_PAGE_SIZE
	}
	if q.Limit > MAX_PAGE_SIZE {
		q.Limit = MAX_PAGE_SIZE
	}
	if q.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}

	if q.Sort == "" {
		q.Sort = DEFAULT_SORT
	}
	column := strings.TrimPrefix(q.Sort, "-")
	if !sortableColumns[column] {
		return fmt.Errorf("unsupported sort column: %s", column)
	}

	// Comma-separated states, validated against the lifecycle
	if q.State != "" {
		for _, raw := range strings.Split(q.State, ",") {
			state := domain.State(strings.TrimSpace(raw))
			if !domain.IsValidState(state) {
				return fmt.Errorf("unknown state: %s", state)
			}
			q.States = append(q.States, state)
		}
	}

	return nil
}
