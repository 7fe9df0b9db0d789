package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-dao/internal/domain/entity"
)

func TestItem_Cost(t *testing.T) {
	it := entity.Item{Quantity: 3, UnitPrice: decimal.RequireFromString("0.10")}
	assert.True(t, decimal.RequireFromString("0.30").Equal(it.Cost()), "sin errores de punto flotante: %s", it.Cost())

	it.Quantity = 0
	assert.True(t, it.Cost().IsZero())
}
