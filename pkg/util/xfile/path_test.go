package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", "out.csv", "out.csv", nil},
		{"nested", "a/./b//out.csv", filepath.Join("a", "b", "out.csv"), nil},
		{"absolute dotdot resolves", "/var/log/../tmp/x.log", "/var/tmp/x.log", nil},
		{"dots in name", "app..2024.log", "app..2024.log", nil},
		{"empty", "", "", ErrEmptyPath},
		{"null byte", "a\x00b", "", ErrNullByte},
		{"trailing slash", "logs/", "", ErrInvalidPath},
		{"trailing backslash", `logs\`, "", ErrInvalidPath},
		{"parent dir allowed", "../out.csv", filepath.Join("..", "out.csv"), nil},
		{"inner dotdot cleaned", "a/b/../out.csv", filepath.Join("a", "out.csv"), nil},
		{"only dotdot", "..", "", ErrInvalidPath},
		{"only dot", ".", "", ErrInvalidPath},
		{"root", "/", "", ErrInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPath(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreate_MakesParentDirs(t *testing.T) {
	name := filepath.Join(t.TempDir(), "x", "y", "out.csv")

	f, err := Create(name)
	require.NoError(t, err)
	_, err = f.WriteString("a,b\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestCreate_Truncates(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(name, []byte("old content"), 0o600))

	f, err := Create(name)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(name)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestCreate_RejectsBadPath(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "out") + "/")
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = Create("out\x00.csv")
	assert.ErrorIs(t, err, ErrNullByte)
}

func TestCreate_ParentDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "work")
	require.NoError(t, os.Mkdir(dir, 0o750))

	f, err := Create(filepath.Join(dir, "..", "out.csv"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "out.csv"))
	assert.NoError(t, err)
}

func TestEnsureDir_CurrentDir(t *testing.T) {
	assert.NoError(t, EnsureDir("file.txt"))
}
