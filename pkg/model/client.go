package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientNameIndex is the unique index on Client.name.
const ClientNameIndex = "IX_Client_Name"

// Client is a named owner of projects. Names are unique across clients.
type Client struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name     string    `gorm:"column:name;type:text;not null;uniqueIndex:IX_Client_Name"`
	Projects []Project `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (Client) TableName() string {
	return "Client"
}

// BeforeCreate assigns the identity on insert.
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
