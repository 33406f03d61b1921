package allocation

import "trip-allocation-service/internal/domain"

// pool holds the orders not yet placed in a trip.
//
// Orders live in an arena in input order; the unassigned ones are threaded
// through a doubly linked index list so removal is O(1) and "the first n
// unassigned orders" always means the same orders for the same input.
type pool struct {
	orders []domain.Order
	next   []int
	prev   []int
	head   int
	size   int
}

const none = -1

func newPool(orders []domain.Order) *pool {
	n := len(orders)
	p := &pool{
		orders: orders,
		next:   make([]int, n),
		prev:   make([]int, n),
		head:   none,
		size:   n,
	}
	for i := range orders {
		p.prev[i] = i - 1
		p.next[i] = i + 1
	}
	if n > 0 {
		p.head = 0
		p.next[n-1] = none
	}
	return p
}

func (p *pool) Len() int { return p.size }

func (p *pool) order(i int) domain.Order { return p.orders[i] }

// remove unlinks arena index i. i must still be in the pool.
func (p *pool) remove(i int) {
	if pv := p.prev[i]; pv != none {
		p.next[pv] = p.next[i]
	} else {
		p.head = p.next[i]
	}
	if nx := p.next[i]; nx != none {
		p.prev[nx] = p.prev[i]
	}
	p.next[i], p.prev[i] = none, none
	p.size--
}

// scan calls fn for the first limit unassigned indices in input order.
// A limit <= 0 scans the whole pool.
func (p *pool) scan(limit int, fn func(i int)) {
	seen := 0
	for i := p.head; i != none; i = p.next[i] {
		if limit > 0 && seen == limit {
			return
		}
		fn(i)
		seen++
	}
}

// indices returns the unassigned indices in input order.
func (p *pool) indices() []int {
	out := make([]int, 0, p.size)
	p.scan(0, func(i int) { out = append(out, i) })
	return out
}
