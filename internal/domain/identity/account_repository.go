package identity

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines persistence operations for accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	// FindAll returns all accounts ordered by name.
	FindAll(ctx context.Context) ([]Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, account *Account) error
	// DeleteCascade removes the account together with every record it
	// transitively owns (invoices, payments, consumptions, bills,
	// complaints, connections) inside a single transaction. Either the
	// whole graph disappears or none of it does.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
