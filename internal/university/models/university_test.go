package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedDomains(t *testing.T) {
	u := &University{
		PrimaryDomain: " UNILAG.edu.ng ",
		Domains:       []string{"unilag.edu.ng", "Student.Unilag.edu.ng", ""},
	}
	assert.Equal(t, []string{"unilag.edu.ng", "student.unilag.edu.ng"}, u.AllowedDomains())

	empty := &University{}
	assert.Empty(t, empty.AllowedDomains())
}

func TestLookupConfigHeader(t *testing.T) {
	assert.Equal(t, "X-API-Key", LookupConfig{}.Header())
	assert.Equal(t, "Authorization", LookupConfig{AuthHeader: "Authorization"}.Header())
}
