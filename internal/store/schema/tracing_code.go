package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/veritrace/veritrace/internal/domain"
)

// Leg represents one hand-off of the physical unit between two actors.
// Field names on the wire keep the platform's historical spelling
// ("reciver"); scanners and mobile clients depend on it.
type Leg struct {
	// Sender is the actor that initiated this hand-off
	Sender string `json:"sender"`
	// ReceiverType distinguishes registered businesses from anonymous consumers
	ReceiverType domain.ReceiverType `json:"reciver_type"`
	// Receiver is the receiving actor's id; absent for consumer legs
	Receiver string `json:"reciver,omitempty"`
	// ReceiverName/Phone/Address describe a consumer receiver
	ReceiverName    string `json:"reciver_name,omitempty"`
	ReceiverPhone   string `json:"reciver_phone,omitempty"`
	ReceiverAddress string `json:"reciver_address,omitempty"`
	// Courier fields are populated once the express step runs on this leg
	Courier     string     `json:"courier,omitempty"`
	ExpressNo   string     `json:"express_no,omitempty"`
	ExpressName string     `json:"express_name,omitempty"`
	ExpressAt   *time.Time `json:"express_at,omitempty"`
	// SendAt is stamped at send, ReceivedAt at receive
	SendAt     time.Time  `json:"send_at"`
	ReceivedAt *time.Time `json:"reciver_at,omitempty"`
}

// TracingCode represents the tracing_codes table - one row per physical unit.
// The inner code is never exposed to consumers; the outer code is printed
// and scanned publicly. Both are immutable after issuance.
type TracingCode struct {
	// ID is a ULID assigned at issuance
	ID string `gorm:"column:id;primaryKey;type:varchar(26)"`
	// InnerCode is the private identifier ("01" + SHA-512 hex)
	InnerCode string `gorm:"column:inner_code;not null;uniqueIndex;type:text"`
	// OuterCode is the public identifier ("01" + SHA-512 hex)
	OuterCode string `gorm:"column:outer_code;not null;uniqueIndex;type:text"`
	// Factory is the manufacturer owning the issuing order; immutable
	Factory string `gorm:"column:factory;not null;type:text;index"`
	// Owner is the actor currently holding custody; reassigned only on receive
	Owner string `gorm:"column:owner;not null;type:text;index"`
	// OrderID is the order this code was issued under; immutable
	OrderID string `gorm:"column:order_id;not null;type:text;index"`
	// No is the sequence number within the batch (1..N); immutable
	No int `gorm:"column:no;not null"`
	// State is the lifecycle state (UNBIND, BIND, SEND, EXPRESSED, RECEIVED)
	State domain.State `gorm:"column:state;not null;type:text;index;default:'UNBIND'"`
	// IsEnd freezes the record once the code reached a terminal hand-off
	IsEnd bool `gorm:"column:is_end;not null;default:false"`
	// IsFactoryTracing marks bundle codes aggregating child tracing codes
	IsFactoryTracing bool `gorm:"column:is_factory_tracing;not null;default:false"`
	// Products holds barcode-product ids; mutually exclusive with TracingProducts
	Products datatypes.JSONSlice[string] `gorm:"column:products;type:jsonb"`
	// TracingProducts holds child tracing-code ids bound to a bundle code
	TracingProducts datatypes.JSONSlice[string] `gorm:"column:tracing_products;type:jsonb"`
	// ActiveLeg is the in-flight hand-off, mutated until finalized; nil before first send
	ActiveLeg *datatypes.JSONType[Leg] `gorm:"column:active_leg;type:jsonb"`
	// History holds finalized legs, oldest first
	History datatypes.JSONSlice[Leg] `gorm:"column:history;type:jsonb"`
	// Revision guards optimistic updates; every committed transition increments it
	Revision int64 `gorm:"column:revision;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the TracingCode model
func (TracingCode) TableName() string {
	return "tracing_codes"
}

// ActiveLegValue returns a copy of the active leg, or nil when no hand-off
// is in flight.
func (c *TracingCode) ActiveLegValue() *Leg {
	if c.ActiveLeg == nil {
		return nil
	}
	leg := c.ActiveLeg.Data()
	return &leg
}

// SetActiveLeg replaces the active leg
func (c *TracingCode) SetActiveLeg(leg Leg) {
	v := datatypes.NewJSONType(leg)
	c.ActiveLeg = &v
}
