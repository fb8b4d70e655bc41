package models

import (
	"time"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConnectionModel is the persistence model for the Connection domain entity.
type ConnectionModel struct {
	BaseModel
	AccountID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	MeterNo    string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	TariffType billing.TariffType `gorm:"type:varchar(20);not null"`
	TariffRate decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ConnectionModel) TableName() string {
	return "connections"
}

// ToDomain converts the persistence model to a domain Connection entity.
func (m *ConnectionModel) ToDomain() *billing.Connection {
	return &billing.Connection{
		BaseEntity: m.BaseModel.ToDomain(),
		AccountID:  m.AccountID,
		MeterNo:    m.MeterNo,
		TariffType: m.TariffType,
		TariffRate: m.TariffRate,
	}
}

// FromDomain populates the persistence model from a domain Connection entity.
func (m *ConnectionModel) FromDomain(c *billing.Connection) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.AccountID = c.AccountID
	m.MeterNo = c.MeterNo
	m.TariffType = c.TariffType
	m.TariffRate = c.TariffRate
}

// ConnectionModelFromDomain creates a new persistence model from a domain Connection entity.
func ConnectionModelFromDomain(c *billing.Connection) *ConnectionModel {
	m := &ConnectionModel{}
	m.FromDomain(c)
	return m
}

// ConsumptionModel is the persistence model for the Consumption domain entity.
type ConsumptionModel struct {
	BaseModel
	ConnectionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Units        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReadingDate  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ConsumptionModel) TableName() string {
	return "consumptions"
}

// ToDomain converts the persistence model to a domain Consumption entity.
func (m *ConsumptionModel) ToDomain() *billing.Consumption {
	return &billing.Consumption{
		BaseEntity:   m.BaseModel.ToDomain(),
		ConnectionID: m.ConnectionID,
		Units:        m.Units,
		ReadingDate:  m.ReadingDate,
	}
}

// FromDomain populates the persistence model from a domain Consumption entity.
func (m *ConsumptionModel) FromDomain(c *billing.Consumption) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ConnectionID = c.ConnectionID
	m.Units = c.Units
	m.ReadingDate = c.ReadingDate
}

// ConsumptionModelFromDomain creates a new persistence model from a domain Consumption entity.
func ConsumptionModelFromDomain(c *billing.Consumption) *ConsumptionModel {
	m := &ConsumptionModel{}
	m.FromDomain(c)
	return m
}

// BillModel is the persistence model for the Bill domain entity.
type BillModel struct {
	BaseModel
	ConnectionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DueDate      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseEntity:   m.BaseModel.ToDomain(),
		ConnectionID: m.ConnectionID,
		Amount:       m.Amount,
		DueDate:      m.DueDate,
	}
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.ConnectionID = b.ConnectionID
	m.Amount = b.Amount
	m.DueDate = b.DueDate
}

// BillModelFromDomain creates a new persistence model from a domain Bill entity.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
// The unique index on BillID enforces at most one payment per bill.
type PaymentModel struct {
	BaseModel
	BillID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	Amount decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status billing.PaymentStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity: m.BaseModel.ToDomain(),
		BillID:     m.BillID,
		Amount:     m.Amount,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.BillID = p.BillID
	m.Amount = p.Amount
	m.Status = p.Status
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// InvoiceModel is the persistence model for the Invoice domain entity.
type InvoiceModel struct {
	BaseModel
	PaymentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceNo string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	IssuedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		BaseEntity: m.BaseModel.ToDomain(),
		PaymentID:  m.PaymentID,
		InvoiceNo:  m.InvoiceNo,
		IssuedAt:   m.IssuedAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(i *billing.Invoice) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.PaymentID = i.PaymentID
	m.InvoiceNo = i.InvoiceNo
	m.IssuedAt = i.IssuedAt
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(i)
	return m
}
