package schema

import (
	"time"
)

// OrderStatus represents the payment/fulfilment status of an order
type OrderStatus string

const (
	// OrderStatusCreated means the order exists but payment is unconfirmed
	OrderStatusCreated OrderStatus = "CREATED"
	// OrderStatusPaymentConfirmed means the payment gateway confirmed payment
	OrderStatusPaymentConfirmed OrderStatus = "PAYMENT_CONFIRMED"
	// OrderStatusPrinted means tracing codes were issued and the manifest produced
	OrderStatusPrinted OrderStatus = "PRINTED"
)

// Order represents the orders table. Order lifecycle is owned elsewhere;
// issuance only reads commodity/count/status/buyer and stamps the printed
// marker plus the manifest attachment.
type Order struct {
	// ID is a UUID assigned at order creation
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// CommodityID references the ordered commodity
	CommodityID string `gorm:"column:commodity_id;not null;type:text;index"`
	// Count is the ordered quantity of the commodity
	Count int `gorm:"column:count;not null"`
	// Status is the order lifecycle status
	Status OrderStatus `gorm:"column:status;not null;type:text;index"`
	// Buyer is the purchasing factory's user id
	Buyer string `gorm:"column:buyer;not null;type:text;index"`
	// Attachment references the issuance manifest file once printed
	Attachment *string `gorm:"column:attachment;type:text"`
	// PrintAt is stamped when the codes were issued
	PrintAt *time.Time `gorm:"column:print_at;type:timestamptz"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}
