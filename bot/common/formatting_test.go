package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCarrots(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCarrots(tt.amount))
	}
}

func TestFormatSignedCarrots(t *testing.T) {
	assert.Equal(t, "+1,000", FormatSignedCarrots(1000))
	assert.Equal(t, "+0", FormatSignedCarrots(0))
	assert.Equal(t, "-250", FormatSignedCarrots(-250))
}
