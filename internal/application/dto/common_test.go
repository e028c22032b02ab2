package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	p := dto.PageRequest{Offset: -3}
	p.DefaultPage()
	assert.Equal(t, dto.DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
	require.NoError(t, dto.Validate(p))

	p = dto.PageRequest{Limit: dto.MaxLimit + 1}
	p.DefaultPage()
	assert.ErrorIs(t, dto.Validate(p), domain.ErrInvalidInput)
}

func TestPageRequest_Response(t *testing.T) {
	p := dto.PageRequest{Limit: 10, Offset: 20}
	assert.Equal(t, dto.PageResponse{Limit: 10, Offset: 20, Count: 10, HasMore: true}, p.Response(10))
	assert.Equal(t, dto.PageResponse{Limit: 10, Offset: 20, Count: 4}, p.Response(4))
	assert.False(t, dto.PageRequest{}.Response(0).HasMore)
}
