package order

// DropDeliveryPerson clears the courier of an order in place so tests can
// reach states that RestoreOrder refuses to load.
func DropDeliveryPerson(o *Order) {
	o.deliveryPersonID = nil
}
