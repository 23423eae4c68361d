package services

import (
	"github.com/moviplay/user-service/internal/models"
)

// IdentifierField names one of the alternate identifier columns of a user.
// The string value doubles as the column name.
type IdentifierField string

const (
	FieldUsername    IdentifierField = "username"
	FieldEmail       IdentifierField = "email"
	FieldPhoneNumber IdentifierField = "phone_number"
	FieldGoogleID    IdentifierField = "google_id"
	FieldAppleID     IdentifierField = "apple_id"
)

// IdentifierFields lists every identifier column in matching order. Adding
// a future identifier type means adding a constant here and a case to
// applyTo; the resolver itself needs no change.
var IdentifierFields = []IdentifierField{
	FieldUsername,
	FieldEmail,
	FieldPhoneNumber,
	FieldGoogleID,
	FieldAppleID,
}

// Identifier is a single (field, value) pair from a resolve request. An
// empty value means the field was not supplied.
type Identifier struct {
	Field IdentifierField
	Value string
}

type Identifiers []Identifier

// Supplied filters the set down to pairs with a non-empty value.
func (ids Identifiers) Supplied() Identifiers {
	out := make(Identifiers, 0, len(ids))
	for _, id := range ids {
		if id.Value != "" {
			out = append(out, id)
		}
	}
	return out
}

// applyTo writes the identifier's value into the matching user column.
func (id Identifier) applyTo(u *models.User) {
	v := id.Value
	switch id.Field {
	case FieldUsername:
		u.Username = &v
	case FieldEmail:
		u.Email = &v
	case FieldPhoneNumber:
		u.PhoneNumber = &v
	case FieldGoogleID:
		u.GoogleID = &v
	case FieldAppleID:
		u.AppleID = &v
	}
}
