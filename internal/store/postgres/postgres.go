// Package postgres implements the record-store contract on PostgreSQL via
// pgx. Name search is pushed to the store as ILIKE; location filters as
// equality predicates.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Sanjay-Kirti/YouMDB/internal/store"
)

// New wires the pgx-backed stores into a store.Store.
func New(pool *pgxpool.Pool) *store.Store {
	return &store.Store{
		Creators:    NewCreatorStore(pool),
		Videos:      NewVideoStore(pool),
		Reviews:     NewReviewStore(pool),
		Suggestions: NewSuggestionStore(pool),
	}
}
