package emaildomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unimodels "campuspass/internal/university/models"
	dErrors "campuspass/pkg/domain-errors"
)

func TestIsEmailDomainAllowed(t *testing.T) {
	unilag := &unimodels.University{PrimaryDomain: "unilag.edu.ng"}

	tests := []struct {
		name        string
		email       string
		university  *unimodels.University
		wantAllowed bool
		wantMatch   string
		wantCode    dErrors.Code
	}{
		{"subdomain of primary", "student@csc.unilag.edu.ng", unilag, true, "unilag.edu.ng", ""},
		{"exact primary", "student@unilag.edu.ng", unilag, true, "unilag.edu.ng", ""},
		{"upper-case domain", "Student@CSC.UNILAG.EDU.NG", unilag, true, "unilag.edu.ng", ""},
		{"mid-label lookalike", "student@fakeunilag.edu.ng", unilag, false, "", dErrors.CodeValidation},
		{"bare suffix lookalike", "x@fakeedu.ng", &unimodels.University{PrimaryDomain: "edu.ng"}, false, "", dErrors.CodeValidation},
		{"extra domain", "x@live.ui.edu.ng", &unimodels.University{PrimaryDomain: "ui.edu.ng", Domains: []string{"LIVE.ui.edu.ng"}}, true, "ui.edu.ng", ""},
		{"extra domain only", "x@stu.oauife.edu.ng", &unimodels.University{Domains: []string{"oauife.edu.ng"}}, true, "oauife.edu.ng", ""},
		{"last at sign wins", `"a@b"@unilag.edu.ng`, unilag, true, "unilag.edu.ng", ""},
		{"no domains configured", "x@unilag.edu.ng", &unimodels.University{}, false, "", dErrors.CodeNotConfigured},
		{"no at sign", "unilag.edu.ng", unilag, false, "", dErrors.CodeInvalidInput},
		{"empty domain", "student@", unilag, false, "", dErrors.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := IsEmailDomainAllowed(tt.email, tt.university)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, tt.wantCode), "expected %s, got %v", tt.wantCode, err)
				assert.False(t, match.Allowed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, match.Allowed)
			assert.Equal(t, tt.wantMatch, match.MatchedDomain)
		})
	}
}

func TestMismatchMessageListsAcceptedDomains(t *testing.T) {
	u := &unimodels.University{PrimaryDomain: "ui.edu.ng", Domains: []string{"live.ui.edu.ng"}}
	_, err := IsEmailDomainAllowed("x@gmail.com", u)
	require.Error(t, err)
	assert.Equal(t, "email domain does not match; use an email ending with ui.edu.ng, live.ui.edu.ng", dErrors.MessageOf(err))
}

func TestIsAcademicEmail(t *testing.T) {
	assert.True(t, IsAcademicEmail("a@mit.edu"))
	assert.True(t, IsAcademicEmail("a@unilag.edu.ng"))
	assert.True(t, IsAcademicEmail("a@covenant.ac.ng"))
	assert.True(t, IsAcademicEmail("a@kings.sch.ng"))
	assert.False(t, IsAcademicEmail("a@fakeedu.ng"))
	assert.False(t, IsAcademicEmail("a@gmail.com"))
	assert.False(t, IsAcademicEmail("a@edu.ng"))
	assert.False(t, IsAcademicEmail("not-an-email"))
}

// The two paths can disagree: a generic academic address is not automatically
// accepted by a specific university.
func TestGenericAndSpecificPathsAreIndependent(t *testing.T) {
	email := "student@unilorin.edu.ng"
	assert.True(t, IsAcademicEmail(email))

	_, err := IsEmailDomainAllowed(email, &unimodels.University{PrimaryDomain: "unilag.edu.ng"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
