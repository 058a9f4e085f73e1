package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, (&User{ID: 1, Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{ID: 2, Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{ID: 3}).IsAdmin())

	var anonymous *User
	assert.False(t, anonymous.IsAdmin(), "anonymous is never the admin")
}
