package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientUserTable is the join table behind User.Clients.
const ClientUserTable = "client_users"

// User is declared with a many-to-many link to clients. Nothing seeds or
// queries users; the table and join table exist so the link can be used later.
type User struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name    string    `gorm:"column:name;type:text;not null"`
	Clients []Client  `gorm:"many2many:client_users;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "Users"
}

// BeforeCreate assigns the identity on insert.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
