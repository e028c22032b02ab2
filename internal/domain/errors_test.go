package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreError_EnvuelveFallasDelDriver(t *testing.T) {
	driver := errors.New("connection reset")

	err := StoreError("list products", driver)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, driver)
	assert.Contains(t, err.Error(), "list products")

	err = StoreError("", driver)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, driver)
}

func TestStoreError_RespetaCategorias(t *testing.T) {
	err := StoreError("mark read", ErrNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)

	wrapped := StoreError("get", StoreError("scan", errors.New("boom")))
	assert.ErrorIs(t, wrapped, ErrStoreUnavailable)
	assert.Equal(t, 1, strings.Count(wrapped.Error(), ErrStoreUnavailable.Error()))

	assert.Equal(t, ErrDuplicate, StoreError("", ErrDuplicate))
	assert.NoError(t, StoreError("x", nil))
}
