package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrimLower(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil input", nil, nil},
		{"empty input", []string{}, []string{}},
		{"case-insensitive duplicates", []string{"UNILAG.edu.ng", " unilag.EDU.ng ", "lasu.edu.ng"}, []string{"unilag.edu.ng", "lasu.edu.ng"}},
		{"drops blanks", []string{"", "  ", "a.ng"}, []string{"a.ng"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DedupeAndTrimLower(tt.input))
		})
	}
}

func TestHasLabelSuffix(t *testing.T) {
	tests := []struct {
		host, suffix string
		want         bool
	}{
		{"unilag.edu.ng", "unilag.edu.ng", true},
		{"csc.unilag.edu.ng", "unilag.edu.ng", true},
		{"fakeunilag.edu.ng", "unilag.edu.ng", false},
		{"fakeedu.ng", "edu.ng", false},
		{"school.edu.ng", ".edu.ng", true},
		{"edu.ng", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.host+"/"+tt.suffix, func(t *testing.T) {
			assert.Equal(t, tt.want, HasLabelSuffix(tt.host, tt.suffix))
		})
	}
}
