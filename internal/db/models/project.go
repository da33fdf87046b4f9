package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Project groups tasks and sprints under a single planning scope
type Project struct {
	gorm.Model
	Name        string    `json:"name" gorm:"not null; index"`
	Description string    `json:"description" gorm:"type:text"`
	Tasks       []Task    `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
	Sprints     []Sprint  `json:"sprints,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new project
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	return p.Validate()
}
