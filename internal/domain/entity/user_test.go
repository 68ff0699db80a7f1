package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCPF(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"formatted", "123.456.789-00", "12345678900"},
		{"already normalized", "12345678900", "12345678900"},
		{"spaces and letters", " 123 456 789 00 abc", "12345678900"},
		{"empty", "", ""},
		{"no digits", "---...", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCPF(tc.in))
		})
	}
}

func TestNewIDUniqueAndOrdered(t *testing.T) {
	seen := make(map[string]bool)
	var prev string
	for i := 0; i < 100; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		if prev != "" {
			// UUIDv7 ids generated in sequence sort chronologically.
			assert.LessOrEqual(t, prev, id)
		}
		prev = id
	}
}

func TestNewUserAssignsID(t *testing.T) {
	ts := time.Now()
	u := NewUser("12345678900", "a@b.com", "Ana", "Silva", ts, ts)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "12345678900", u.CPF)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, "Ana", u.FirstName)
	assert.Equal(t, "Silva", u.LastName)
}
