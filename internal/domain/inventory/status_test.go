package inventory_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyStock_NivelesConMinimo100(t *testing.T) {
	cases := []struct {
		qty  float64
		want inventory.LowStockStatus
	}{
		{15, inventory.StockCritical},
		{20, inventory.StockCritical}, // límite inclusivo
		{45, inventory.StockWarning},
		{50, inventory.StockWarning},
		{90, inventory.StockLow},
		{100, inventory.StockLow},
		{150, inventory.StockOK},
		{0, inventory.StockCritical},
	}
	for _, tc := range cases {
		got, err := inventory.ClassifyStock(tc.qty, 100)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "cantidad %v", tc.qty)
	}
}

func TestClassifyStock_EsPura(t *testing.T) {
	a, err := inventory.ClassifyStock(45, 100)
	require.NoError(t, err)
	b, err := inventory.ClassifyStock(45, 100)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestClassifyStock_MinimoCero(t *testing.T) {
	got, err := inventory.ClassifyStock(0, 0)
	require.NoError(t, err)
	assert.Equal(t, inventory.StockCritical, got)

	got, err = inventory.ClassifyStock(1, 0)
	require.NoError(t, err)
	assert.Equal(t, inventory.StockOK, got)
}

func TestClassifyStock_EntradaInvalida(t *testing.T) {
	for _, in := range [][2]float64{
		{math.NaN(), 10},
		{10, math.NaN()},
		{math.Inf(1), 10},
		{-1, 10},
		{5, -10},
	} {
		_, err := inventory.ClassifyStock(in[0], in[1])
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "entrada %v", in)
	}
}

func TestClassifyStock_UmbralesPersonalizados(t *testing.T) {
	th := inventory.Thresholds{CriticalRatio: 0.1, WarningRatio: 0.3, CriticalDays: 3, WarningDays: 14}
	require.NoError(t, th.Validate())

	got, err := th.ClassifyStock(15, 100)
	require.NoError(t, err)
	assert.Equal(t, inventory.StockWarning, got)
}

func TestClassifyExpiry_Limites(t *testing.T) {
	today := date(2025, time.January, 1)
	cases := []struct {
		expiry time.Time
		want   inventory.ExpiryStatus
	}{
		{date(2024, time.December, 31), inventory.ExpiryExpired},
		{date(2025, time.January, 1), inventory.ExpiryCritical},
		{date(2025, time.January, 5), inventory.ExpiryCritical},
		{date(2025, time.January, 8), inventory.ExpiryCritical}, // 7 días exactos
		{date(2025, time.January, 9), inventory.ExpiryWarning},
		{date(2025, time.January, 20), inventory.ExpiryWarning},
		{date(2025, time.January, 31), inventory.ExpiryWarning}, // 30 días exactos
		{date(2025, time.March, 1), inventory.ExpiryOK},
	}
	for _, tc := range cases {
		got, err := inventory.ClassifyExpiry(tc.expiry, today)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "vencimiento %s", tc.expiry.Format("2006-01-02"))
	}
}

func TestDaysLeft_RedondeaHaciaArriba(t *testing.T) {
	today := time.Date(2025, time.January, 1, 15, 0, 0, 0, time.UTC)

	days, err := inventory.DaysLeft(date(2025, time.January, 2), today)
	require.NoError(t, err)
	assert.Equal(t, 1, days, "9 horas restantes cuentan como 1 día")

	days, err = inventory.DaysLeft(date(2024, time.December, 30), today)
	require.NoError(t, err)
	assert.Equal(t, -2, days)
}

func TestClassifyExpiry_FechaVacia(t *testing.T) {
	_, err := inventory.ClassifyExpiry(time.Time{}, date(2025, time.January, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIsRelevantExpiry(t *testing.T) {
	assert.True(t, inventory.IsRelevantExpiry(-30))
	assert.True(t, inventory.IsRelevantExpiry(0))
	assert.True(t, inventory.IsRelevantExpiry(30))
	assert.False(t, inventory.IsRelevantExpiry(-31))
	assert.False(t, inventory.IsRelevantExpiry(31))
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, inventory.DefaultThresholds().Validate())

	bad := inventory.DefaultThresholds()
	bad.CriticalRatio = 0.6
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)

	bad = inventory.DefaultThresholds()
	bad.CriticalDays = 40
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)
}
