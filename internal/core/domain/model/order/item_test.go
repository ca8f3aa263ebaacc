package order_test

import (
	"testing"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOption(t *testing.T, price int64) *order.MenuOption {
	t.Helper()
	opt, err := order.NewMenuOption(kernel.NewUUID(), "large", kernel.MoneyFromInt(price))
	require.NoError(t, err)
	return &opt
}

func mustItem(t *testing.T, qty int, unitPrice int64, option *order.MenuOption) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), option, qty, kernel.MoneyFromInt(unitPrice))
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("line total without option", func(t *testing.T) {
		item := mustItem(t, 2, 1000, nil)

		assert.False(t, item.HasOption())
		assert.Nil(t, item.Option())
		assert.True(t, item.LineTotal().IsEqual(kernel.MoneyFromInt(2000)))
	})

	t.Run("line total includes option surcharge per unit", func(t *testing.T) {
		item := mustItem(t, 3, 2000, mustOption(t, 500))

		assert.True(t, item.HasOption())
		assert.True(t, item.LineTotal().IsEqual(kernel.MoneyFromInt(7500)))
	})

	t.Run("quantity bounds", func(t *testing.T) {
		for _, qty := range []int{0, -1, 100} {
			_, err := order.NewItem(kernel.NewUUID(), nil, qty, kernel.MoneyFromInt(1000))
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "qty %d", qty)
		}
		mustItem(t, 1, 1000, nil)
		mustItem(t, 99, 1000, nil)
	})

	t.Run("unit price must be positive", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), nil, 1, kernel.Zero)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("menu id is required and errors are joined", func(t *testing.T) {
		_, err := order.NewItem(kernel.UUID{}, nil, 0, kernel.Zero)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value item is rejected", func(t *testing.T) {
		var item order.Item

		assert.Equal(t, order.ErrItemIsNotConstructed, item.Validate())
	})
}

func TestItem_Copy(t *testing.T) {
	t.Run("copy keeps the line and changes the identity", func(t *testing.T) {
		original := mustItem(t, 2, 1500, mustOption(t, 300))

		c := original.Copy()

		assert.False(t, c.ID().IsEqual(original.ID()))
		assert.True(t, c.MenuID().IsEqual(original.MenuID()))
		assert.Equal(t, original.Quantity(), c.Quantity())
		assert.True(t, c.LineTotal().IsEqual(original.LineTotal()))
		assert.True(t, c.Option().ID().IsEqual(original.Option().ID()))
		require.NoError(t, c.Validate())
	})
}

func TestItems(t *testing.T) {
	t.Run("remove of a missing id is a no-op", func(t *testing.T) {
		var items order.Items
		require.NoError(t, items.Add(mustItem(t, 1, 1000, nil)))

		assert.False(t, items.Remove(kernel.NewUUID()))
		assert.Equal(t, 1, items.Len())
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		var items order.Items
		a, b, c := mustItem(t, 1, 100, nil), mustItem(t, 1, 200, nil), mustItem(t, 1, 300, nil)
		require.NoError(t, items.Add(a))
		require.NoError(t, items.Add(b))
		require.NoError(t, items.Add(c))

		require.True(t, items.Remove(b.ID()))

		all := items.All()
		require.Len(t, all, 2)
		assert.True(t, all[0].ID().IsEqual(a.ID()))
		assert.True(t, all[1].ID().IsEqual(c.ID()))
		assert.True(t, items.Total().IsEqual(kernel.MoneyFromInt(400)))
	})

	t.Run("rejects unconstructed items", func(t *testing.T) {
		var items order.Items

		require.Error(t, items.Add(order.Item{}))
		assert.True(t, items.IsEmpty())
	})
}
