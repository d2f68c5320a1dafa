package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"code passthrough", "TX", "TX"},
		{"lowercase code", "tx", "TX"},
		{"full name", "Texas", "TX"},
		{"full name lowercase", "north carolina", "NC"},
		{"dc", "District of Columbia", "DC"},
		{"trims", "  Ohio  ", "OH"},
		{"placeholder", "n/a", ""},
		{"city only", "Austin", ""},
		{"invalid code", "ZZ", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeState(tt.in))
		})
	}
}

func TestExtractStates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single code", "Dallas, TX", []string{"TX"}},
		{"full name", "headquartered in Texas", []string{"TX"}},
		{"multiple states sorted", "operations in Texas, OK and Louisiana", []string{"LA", "OK", "TX"}},
		{"code boundary respected", "TAX returns", nil},
		{"name and code dedup", "Texas (TX)", []string{"TX"}},
		{"nothing", "Midwest-focused services", nil},
		{"placeholder", "unknown", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractStates(tt.in))
		})
	}
}

func TestExtractStatesFromList(t *testing.T) {
	got := ExtractStatesFromList([]string{"Texas", "Tulsa, OK", "n/a", "fl"})
	assert.Equal(t, []string{"FL", "OK", "TX"}, got)

	assert.Nil(t, ExtractStatesFromList(nil))
	assert.Nil(t, ExtractStatesFromList([]string{"Southeast"}))
}
