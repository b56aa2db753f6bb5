package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoerceText(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"trimmed string", "  Alice \t", "Alice"},
		{"bytes", []byte(" Lushen "), "Lushen"},
		{"integral float", 1.0, "1"},
		{"fractional float", 2.5, "2.5"},
		{"float32", float32(0.5), "0.5"},
		{"int", 42, "42"},
		{"int8", int8(-3), "-3"},
		{"uint16", uint16(40), "40"},
		{"bool", true, "true"},
		{"time", time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC), "2022-05-01T12:00:00Z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceText(tt.in))
		})
	}
}

func TestCoerceTextDereferencesPointers(t *testing.T) {
	s := " Bob "
	var nilPtr *string

	assert.Equal(t, "Bob", CoerceText(&s))
	assert.Equal(t, "", CoerceText(nilPtr))
}
