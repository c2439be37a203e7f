package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectNameIndex is the unique index on (Project.client_id, Project.name).
const ProjectNameIndex = "IX_Project_ClientId_Name"

// Project belongs to exactly one client. A client cannot own two projects
// with the same name; different clients may reuse a name.
type Project struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name     string    `gorm:"column:name;type:text;not null;uniqueIndex:IX_Project_ClientId_Name,priority:2"`
	ClientID uuid.UUID `gorm:"column:client_id;type:uuid;not null;uniqueIndex:IX_Project_ClientId_Name,priority:1"`
}

func (Project) TableName() string {
	return "Project"
}

// BeforeCreate assigns the identity on insert.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
