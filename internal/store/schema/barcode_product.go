package schema

import "time"

// BarcodeProduct represents the barcode_products table - barcoded goods a
// standalone tracing code can be bound to. Only existence checks are used
// by the core.
type BarcodeProduct struct {
	// ID is a UUID assigned at creation
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// Barcode is the printed EAN/UPC barcode value
	Barcode string `gorm:"column:barcode;not null;uniqueIndex;type:text"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Factory is the owning manufacturer's user id
	Factory string `gorm:"column:factory;not null;type:text;index"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BarcodeProduct model
func (BarcodeProduct) TableName() string {
	return "barcode_products"
}
