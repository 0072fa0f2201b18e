package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/testutil"
)

func TestDuplicateAs(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&models.AdminUser{Email: "admin@example.edu", PasswordHash: "x", Role: models.RoleAdmin}).Error)
	err := db.Create(&models.AdminUser{Email: "admin@example.edu", PasswordHash: "y", Role: models.RoleEditor}).Error
	require.Error(t, err)

	assert.Equal(t, FieldErrors{"email": "already exists"}, DuplicateAs(err, "email"))
	assert.Equal(t, FieldErrors{"slug": "already exists"}, DuplicateAs(fmt.Errorf("save: %w", err), "slug"))

	other := errors.New("connection reset")
	assert.Same(t, other, DuplicateAs(other, "slug"))
	assert.NoError(t, DuplicateAs(nil, "slug"))
}
