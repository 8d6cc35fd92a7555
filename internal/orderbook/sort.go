package orderbook

import "sort"

// priceTimeOrder sorts orders highest-price-first, ties broken by
// earliest arrival first. The same comparator is used for both bids
// and asks: ask ordering is not inverted to lowest-first.
func priceTimeOrder(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		cmp := orders[i].Price.Cmp(orders[j].Price)
		if cmp != 0 {
			return cmp > 0
		}
		return orders[i].Ts < orders[j].Ts
	})
}
