// Package service orchestrates single requests: validate the payload, run
// the repository calls, and assemble the response or a typed failure. It
// owns the cross-entity invariants the schema alone cannot enforce, such
// as the duplicate-name check on update and the referenced-project check
// on task moves.
package service

import (
	"time"

	"tareas/internal/storage/sqlite"
)

// Service composes the validator and the repository. One method per
// external operation.
type Service struct {
	store *sqlite.Store
	now   func() time.Time
}

// New constructs the service over an opened store.
func New(store *sqlite.Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// createdAt stamps a new row. Second precision in UTC keeps the stored
// RFC 3339 text sortable; listing ties are broken by id.
func (s *Service) createdAt() time.Time {
	return s.now().UTC().Truncate(time.Second)
}
