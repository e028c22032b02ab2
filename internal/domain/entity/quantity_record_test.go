package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordKey_ParesDistintosNoColisionan(t *testing.T) {
	a := NewRecordKey("A_B", "C")
	b := NewRecordKey("A", "B_C")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a.String(), b.String())
	assert.NotEqual(t, NewRecordKey("A/B", "C").String(), NewRecordKey("A", "B/C").String())
}

func TestRecordKey_NormalizaEspacios(t *testing.T) {
	assert.Equal(t, RecordKey{SKU: "RICE-1", Warehouse: "w1"}, NewRecordKey(" RICE-1 ", "w1 "))
	assert.Equal(t, "6:RICE-1/w1", NewRecordKey("RICE-1", "w1").String())

	rec := &QuantityRecord{SKU: "RICE-1", Warehouse: "w1"}
	ev := &MovementEvent{SKU: "RICE-1", Warehouse: "w1"}
	assert.Equal(t, rec.Key(), ev.Key())
}
