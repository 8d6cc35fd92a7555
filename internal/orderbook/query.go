package orderbook

// Book is a snapshot of both sides, each in canonical price-time
// order.
type Book struct {
	Bids []Order
	Asks []Order
}

// GetBids returns all open bids in price-time order.
func (e *Engine) GetBids() ([]Order, error) {
	orders, err := e.scanOrders(Bid)
	if err != nil {
		return nil, err
	}
	priceTimeOrder(orders)
	return orders, nil
}

// GetAsks returns all open asks in price-time order.
func (e *Engine) GetAsks() ([]Order, error) {
	orders, err := e.scanOrders(Ask)
	if err != nil {
		return nil, err
	}
	priceTimeOrder(orders)
	return orders, nil
}

// GetBook returns both sides.
func (e *Engine) GetBook() (Book, error) {
	bids, err := e.GetBids()
	if err != nil {
		return Book{}, err
	}
	asks, err := e.GetAsks()
	if err != nil {
		return Book{}, err
	}
	return Book{Bids: bids, Asks: asks}, nil
}
