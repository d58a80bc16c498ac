package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{}, MapSlice([]int{}, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestMapSliceWithError(t *testing.T) {
	out, err := MapSliceWithError([]string{"1", "2"}, strconv.Atoi)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, out)

	_, err = MapSliceWithError([]string{"1", "x"}, strconv.Atoi)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")

	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestPtrAndDeref(t *testing.T) {
	assert.Nil(t, Ptr(""))
	assert.Equal(t, "x", *Ptr("x"))
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, int64(5), Deref(Ptr(int64(5))))
}
