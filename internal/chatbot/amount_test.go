package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"deposit 500", "500", true},
		{"deposit $500", "500", true},
		{"put in $1,200.50 please", "1200.5", true},
		{"withdraw 2,000", "2000", true},
		{"add 99.99", "99.99", true},
		{"take out 0.5", "0.5", true},
		{"deposit 123456", "123456", true},
		{"deposit 0", "0", true},
		{"withdraw", "0", false},
		{"balance please", "0", false},
		{"", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, found := ExtractAmount(tt.input)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, amount.String())
			}
		})
	}
}
