// Package uuid wraps google/uuid so that IDs can be bound from
// URI and query parameters by gin.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam parses the parameter with google/uuid's Parse.
// An empty parameter results in Nil.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, e := google_uuid.Parse(p)
	if e != nil {
		return e
	}

	*u = UUID{parsed}
	return nil
}

// Ptr returns a pointer to the wrapped UUID, or nil if u is Nil.
//
// Filters use nil to express "not filtered".
func (u UUID) Ptr() *google_uuid.UUID {
	if u == Nil {
		return nil
	}

	id := u.UUID
	return &id
}
