package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lavoir_back_end/internal/models"
)

func strPtr(s string) *string { return &s }

func TestApplyProfilePatchKeepsAbsentFields(t *testing.T) {
	phone := "+33612345678"
	user := &models.User{FirstName: "Marie", LastName: "Durand", PhoneNumber: &phone}

	// Corps ne portant que le prénom : le reste ne bouge pas
	applyProfilePatch(user, strPtr("Anne"), nil, nil)

	assert.Equal(t, "Anne", user.FirstName)
	assert.Equal(t, "Durand", user.LastName)
	assert.Equal(t, &phone, user.PhoneNumber)
}

func TestApplyProfilePatchUpdatesAllFields(t *testing.T) {
	user := &models.User{FirstName: "Marie", LastName: "Durand"}

	applyProfilePatch(user, strPtr("Anne"), strPtr("Martin"), strPtr("+33700000000"))

	assert.Equal(t, "Anne", user.FirstName)
	assert.Equal(t, "Martin", user.LastName)
	assert.Equal(t, "+33700000000", *user.PhoneNumber)
}

func TestApplyProfilePatchEmptyPhoneClearsNumber(t *testing.T) {
	phone := "+33612345678"
	user := &models.User{PhoneNumber: &phone}

	applyProfilePatch(user, nil, nil, strPtr(""))

	assert.Nil(t, user.PhoneNumber)
}
