package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovie(t *testing.T) {
	fixed := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name     string
		idString string
		wantID   *uuid.UUID
	}{
		{name: "valid lowercase", idString: fixed.String(), wantID: &fixed},
		{name: "valid uppercase", idString: "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", wantID: &fixed},
		{name: "empty", idString: ""},
		{name: "garbage", idString: "not-a-uuid"},
		{name: "truncated", idString: "6ba7b810-9dad-11d1-80b4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMovie("Casablanca", 1943, tt.idString)

			assert.Equal(t, "Casablanca", m.Title)
			assert.Equal(t, 1943, m.Year)
			assert.NotEqual(t, uuid.Nil, m.ID)
			assert.Len(t, m.UUIDString(), 36)

			if tt.wantID != nil {
				assert.Equal(t, *tt.wantID, m.ID)
			}

			parsed, err := uuid.Parse(m.UUIDString())
			require.NoError(t, err)
			assert.Equal(t, m.ID, parsed, "identifier must round-trip through its string form")
		})
	}
}

func TestNewMovieFallbackIsFresh(t *testing.T) {
	a := NewMovie("Boyhood", 2014, "")
	b := NewMovie("Boyhood", 2014, "")
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Equal(b))
}

func TestMovieEqual(t *testing.T) {
	base := NewMovie("Metropolis", 1927, "")

	same := NewMovie("Metropolis", 1927, base.UUIDString())
	assert.True(t, base.Equal(same))

	retitled := same
	retitled.Title = "Metropolis (restored)"
	assert.False(t, base.Equal(retitled))

	moved := same
	moved.Year = 2010
	assert.False(t, base.Equal(moved))
}

func TestMovieString(t *testing.T) {
	m := NewMovie("Heat", 1995, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, "(Heat|1995|6ba7b810-9dad-11d1-80b4-00c04fd430c8)", m.String())
}

func TestMovieJSON(t *testing.T) {
	m := NewMovie("Heat", 1995, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","title":"Heat","year":1995}`, string(data))
}

func TestCreateMovieRequestToMovie(t *testing.T) {
	req := CreateMovieRequest{Title: "Alien", Year: 1979}
	m := req.ToMovie()
	assert.Equal(t, "Alien", m.Title)
	assert.Equal(t, 1979, m.Year)
	assert.NotEqual(t, uuid.Nil, m.ID)
}
