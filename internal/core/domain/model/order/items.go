package order

import "orders/internal/core/domain/model/kernel"

// Items is the ordered set of line items owned by one order.
type Items struct {
	list []Item
}

// Add validates the item and appends it.
func (c *Items) Add(item Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	c.list = append(c.list, item)
	return nil
}

// Remove drops the item with the given id and reports whether one was found.
func (c *Items) Remove(id kernel.UUID) bool {
	for idx, item := range c.list {
		if item.id.IsEqual(id) {
			c.list = append(c.list[:idx:idx], c.list[idx+1:]...)
			return true
		}
	}
	return false
}

// Get finds an item by identity.
func (c Items) Get(id kernel.UUID) (Item, bool) {
	for _, item := range c.list {
		if item.id.IsEqual(id) {
			return item, true
		}
	}
	return Item{}, false
}

// All returns the items in insertion order.
func (c Items) All() []Item {
	out := make([]Item, len(c.list))
	copy(out, c.list)
	return out
}

// Len returns the number of items.
func (c Items) Len() int {
	return len(c.list)
}

// IsEmpty reports whether the collection has no items.
func (c Items) IsEmpty() bool {
	return len(c.list) == 0
}

// Total sums the line totals of every item.
func (c Items) Total() kernel.Money {
	total := kernel.Zero
	for _, item := range c.list {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c Items) clone() Items {
	return Items{list: c.All()}
}
