package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name    string
		store   string
		want    string
		wantErr bool
	}{
		{name: "plain name", store: "movies", want: filepath.Join("/data", "movies.db")},
		{name: "dashes and underscores", store: "my_movies-2", want: filepath.Join("/data", "my_movies-2.db")},
		{name: "empty name", store: "", wantErr: true},
		{name: "path separator", store: "a/b", wantErr: true},
		{name: "dot segments", store: "..", wantErr: true},
		{name: "extension", store: "movies.db", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath("/data", tt.store)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolvePathDefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir, err := DefaultDataDir()
	require.NoError(t, err)

	got, err := ResolvePath("", "movies")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "movies.db"), got)
}
