package services

import (
	"testing"

	"github.com/moviplay/user-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIdentifiersSupplied(t *testing.T) {
	ids := Identifiers{
		{Field: FieldUsername, Value: ""},
		{Field: FieldEmail, Value: "a@example.com"},
		{Field: FieldPhoneNumber, Value: ""},
		{Field: FieldGoogleID, Value: "g-1"},
	}

	supplied := ids.Supplied()
	assert.Equal(t, Identifiers{
		{Field: FieldEmail, Value: "a@example.com"},
		{Field: FieldGoogleID, Value: "g-1"},
	}, supplied)

	assert.Empty(t, Identifiers{{Field: FieldEmail, Value: ""}}.Supplied())
}

func TestIdentifierApplyTo(t *testing.T) {
	var u models.User
	for _, field := range IdentifierFields {
		Identifier{Field: field, Value: "v-" + string(field)}.applyTo(&u)
	}

	assert.Equal(t, "v-username", *u.Username)
	assert.Equal(t, "v-email", *u.Email)
	assert.Equal(t, "v-phone_number", *u.PhoneNumber)
	assert.Equal(t, "v-google_id", *u.GoogleID)
	assert.Equal(t, "v-apple_id", *u.AppleID)
}
