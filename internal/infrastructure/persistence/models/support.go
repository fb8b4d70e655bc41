package models

import (
	"github.com/ebilling/backend/internal/domain/support"
	"github.com/google/uuid"
)

// ComplaintModel is the persistence model for the Complaint domain entity.
type ComplaintModel struct {
	BaseModel
	AccountID   uuid.UUID               `gorm:"type:uuid;not null;index"`
	Description string                  `gorm:"type:text;not null"`
	Status      support.ComplaintStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	AdminID     *uuid.UUID              `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ComplaintModel) TableName() string {
	return "complaints"
}

// ToDomain converts the persistence model to a domain Complaint entity.
func (m *ComplaintModel) ToDomain() *support.Complaint {
	return &support.Complaint{
		BaseEntity:  m.BaseModel.ToDomain(),
		AccountID:   m.AccountID,
		Description: m.Description,
		Status:      m.Status,
		AdminID:     m.AdminID,
	}
}

// FromDomain populates the persistence model from a domain Complaint entity.
func (m *ComplaintModel) FromDomain(c *support.Complaint) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.AccountID = c.AccountID
	m.Description = c.Description
	m.Status = c.Status
	m.AdminID = c.AdminID
}

// ComplaintModelFromDomain creates a new persistence model from a domain Complaint entity.
func ComplaintModelFromDomain(c *support.Complaint) *ComplaintModel {
	m := &ComplaintModel{}
	m.FromDomain(c)
	return m
}
