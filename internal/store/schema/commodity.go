package schema

import "time"

// Commodity represents the commodities table. The core only reads the
// per-unit code quota; commodity CRUD is owned elsewhere.
type Commodity struct {
	// ID is a UUID assigned at creation
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Quota is the number of tracing codes minted per ordered unit
	Quota int `gorm:"column:quota;not null;default:1"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Commodity model
func (Commodity) TableName() string {
	return "commodities"
}
