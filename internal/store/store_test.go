package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waw666waw666/reminder/common"
	"github.com/waw666waw666/reminder/pkg/remind"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, remind.SetConfigDir(dir))

	s, err := Open("", afero.NewMemMapFs(), nil)
	require.NoError(t, err)
	fileStore, ok := s.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, remind.TaskFile(), fileStore.Path())

	s, err = Open(common.StoreSQLite, afero.NewOsFs(), nil)
	require.NoError(t, err)
	_, ok = s.(*SQLStore)
	assert.True(t, ok)
	require.NoError(t, s.Close())

	_, err = Open("postgres", afero.NewMemMapFs(), nil)
	assert.Error(t, err)
}
