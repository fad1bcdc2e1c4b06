// Package branch materializes forks: given a prefix of a chat's messages it
// persists a new chat that records its parent and owns fresh copies of every
// message in the prefix.
package branch

import (
	"github.com/pkg/errors"

	"github.com/arbor-ai/arbor/store"
)

// Taxonomy of branch creation failures.
var (
	// ErrUnauthorized is returned when no authenticated user is attached to
	// the request.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForkPointNotFound is returned when the fork-point message is absent
	// from the supplied message list.
	ErrForkPointNotFound = errors.New("fork point message not found")
)

// Service creates branched chats.
type Service struct {
	store  *store.Store
	titler Titler
}

// NewService instantiates and returns a new branch service.
func NewService(s *store.Store, titler Titler) *Service {
	if titler == nil {
		titler = &PlaceholderTitler{}
	}
	return &Service{
		store:  s,
		titler: titler,
	}
}
