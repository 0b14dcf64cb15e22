package repositories

import (
	"context"
)

// UnitOfWork groups repository writes into one atomic scope. Offer creation
// uses it to insert the offer and move the property to under_offer together.
type UnitOfWork interface {
	// Do executes fn inside a transaction; any error rolls the scope back.
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
