package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labpool/labpool/internal/domain/file"
	"github.com/labpool/labpool/internal/shared/errors"
	"github.com/labpool/labpool/internal/shared/logger"
)

func newTestStorage(t *testing.T, maxMB int) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir(), maxMB, logger.NewNopLogger())
	require.NoError(t, err)
	return s
}

func TestLocalStorage_SaveOpenRemove(t *testing.T) {
	s := newTestStorage(t, 1)
	ctx := context.Background()

	path, size, err := s.Save(ctx, file.ModulePool, "Label.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, int64(9), size)
	assert.True(t, strings.HasPrefix(path, "pool/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	rc, err := s.Open(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.Remove(ctx, path))
	require.NoError(t, s.Remove(ctx, path))

	_, err = s.Open(ctx, path)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestLocalStorage_RejectsOversize(t *testing.T) {
	s := newTestStorage(t, 1)

	_, _, err := s.Save(context.Background(), file.ModuleGeneral, "big.bin", strings.NewReader(strings.Repeat("x", (1<<20)+1)))
	assert.True(t, errors.IsValidationError(err))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s := newTestStorage(t, 1)

	_, err := s.Open(context.Background(), "../../etc/passwd")
	assert.True(t, errors.IsBadRequestError(err))
}
