package schema

import (
	"time"

	"github.com/veritrace/veritrace/internal/domain"
)

// User represents the users table. Account lifecycle is owned elsewhere;
// the core only resolves references supplied in bind/send and maps the
// authenticated actor to a role.
type User struct {
	// ID is a UUID assigned at registration
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Role is the platform role (factory, business, courier, platform)
	Role domain.Role `gorm:"column:role;not null;type:text;index"`
	// Phone is the contact phone number
	Phone string `gorm:"column:phone;type:text"`

	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
