package access

import (
	"time"

	"github.com/gofrs/uuid"
	"scriptum/internal/core/post"
)

// Actor is the requester of an operation: an authenticated user or
// Anonymous. It is passed explicitly into services and handlers, never
// carried in ambient state.
type Actor struct {
	ID            uuid.UUID
	Username      string
	IsStaff       bool
	Authenticated bool
}

func Anonymous() Actor { return Actor{} }

// CanModify reports whether the actor may edit or delete a resource owned
// by authorID. Ownership is the only mutation right; staff get no special
// treatment here.
func CanModify(actor Actor, authorID uuid.UUID) bool {
	return actor.Authenticated && actor.ID == authorID
}

// CanViewPost reports whether the actor may see the post at all. Hidden
// posts stay visible to their author and to staff.
func CanViewPost(actor Actor, p *post.Post, now time.Time) bool {
	if p.PubliclyVisible(now) {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	return actor.ID == p.AuthorID || actor.IsStaff
}
