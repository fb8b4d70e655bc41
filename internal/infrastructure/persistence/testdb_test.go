package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/identity"
	"github.com/ebilling/backend/internal/domain/support"
	"github.com/ebilling/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.AccountModel{},
		&models.AdminModel{},
		&models.ConnectionModel{},
		&models.ConsumptionModel{},
		&models.BillModel{},
		&models.PaymentModel{},
		&models.InvoiceModel{},
		&models.ComplaintModel{},
	)
	require.NoError(t, err)

	return db
}

// seedAccount creates and persists an account
func seedAccount(t *testing.T, db *gorm.DB, name, email string) *identity.Account {
	t.Helper()

	account, err := identity.NewAccount(name, email, "555-0100", "secret123")
	require.NoError(t, err)
	require.NoError(t, NewGormAccountRepository(db).Save(context.Background(), account))
	return account
}

// seedConnection creates and persists a connection for an account
func seedConnection(t *testing.T, db *gorm.DB, account *identity.Account, meterNo string) *billing.Connection {
	t.Helper()

	conn, err := billing.NewConnection(account.ID, meterNo, billing.TariffResidential, decimal.NewFromFloat(5.50))
	require.NoError(t, err)
	require.NoError(t, NewGormConnectionRepository(db).Save(context.Background(), conn))
	return conn
}

// seedBill creates and persists a bill with its consumption record
func seedBill(t *testing.T, db *gorm.DB, conn *billing.Connection, units float64) *billing.Bill {
	t.Helper()

	bill, consumption, err := billing.NewBill(conn, decimal.NewFromFloat(units), time.Now().AddDate(0, 1, 0))
	require.NoError(t, err)
	require.NoError(t, NewGormBillRepository(db).CreateWithConsumption(context.Background(), bill, consumption))
	return bill
}

// seedPayment settles a bill, persisting the payment and its invoice
func seedPayment(t *testing.T, db *gorm.DB, bill *billing.Bill) *billing.Payment {
	t.Helper()

	payment := billing.NewPayment(bill)
	invoice := billing.NewInvoice(payment)
	require.NoError(t, NewGormPaymentRepository(db).CreateWithInvoice(context.Background(), payment, invoice))
	return payment
}

// seedComplaint files and persists a complaint for an account
func seedComplaint(t *testing.T, db *gorm.DB, account *identity.Account, description string) *support.Complaint {
	t.Helper()

	complaint, err := support.NewComplaint(account.ID, description)
	require.NoError(t, err)
	require.NoError(t, NewGormComplaintRepository(db).Save(context.Background(), complaint))
	return complaint
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
