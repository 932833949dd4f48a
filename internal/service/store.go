// Package service contains the business logic for the Travel Buddy API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"

	"github.com/Dibek1910/Travel-Buddy/internal/repo"
)

// Store is the transactional boundary every service mutation runs behind.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets service
// tests inject fake repos without a database, while production wires
// *repo.Store.
type Store interface {
	// Repos returns repositories for reads that need no multi-record atomicity.
	Repos() repo.Repos

	// InTx runs fn inside a single snapshot-isolated transaction: every read
	// fn performs observes the state the commit is validated against, and a
	// returned error aborts with no partial writes. Write conflicts surface
	// as domain.ErrConflict; callers decide whether to retry.
	InTx(ctx context.Context, fn func(r repo.Repos) error) error
}
