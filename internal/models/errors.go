package models

import (
	"github.com/cashbook/backend/internal/ledger"
)

var (
	ErrGeneral          = ledger.Unavailable("an error occurred on the server during your request")
	ErrStillReferenced  = ledger.Conflict("the resource is still referenced by other resources")
	ErrReferenceMissing = ledger.NotFound("referenced resource")
)
