package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("a walkable area", []string{"walkab", "walk"}))
	assert.False(t, ContainsAny("a quiet street", []string{"nightlife", "entertainment"}))
	assert.False(t, ContainsAny("anything", nil))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "Plain", input: "1500", want: 1500, wantOK: true},
		{name: "Thousands separator", input: "2,100", want: 2100, wantOK: true},
		{name: "Padded", input: " 900 ", want: 900, wantOK: true},
		{name: "Empty", input: "", wantOK: false},
		{name: "Only commas", input: ",,", wantOK: false},
		{name: "Overflow", input: "99999999999999999999999", wantOK: false},
		{name: "Above ceiling", input: "1000000001", wantOK: false},
		{name: "Non numeric", input: "12a", wantOK: false},
		{name: "Thousands suffix", input: "2k", want: 2000, wantOK: true},
		{name: "Decimal thousands", input: "2.5k", want: 2500, wantOK: true},
		{name: "Upper case suffix", input: "1.75K", want: 1750, wantOK: true},
		{name: "Decimal without suffix", input: "2.5", wantOK: false},
		{name: "Bare suffix", input: "k", wantOK: false},
		{name: "Too many decimals", input: "2.5555k", wantOK: false},
		{name: "Signed fraction", input: "2.-5k", wantOK: false},
		{name: "Suffix above ceiling", input: "1000001k", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCleanPlace(t *testing.T) {
	assert.Equal(t, "99 Bank St", CleanPlace("  99   Bank St! "))
	assert.Equal(t, "uOttawa", CleanPlace(`"uOttawa"`))
	assert.Equal(t, "", CleanPlace(" ?! "))
}
