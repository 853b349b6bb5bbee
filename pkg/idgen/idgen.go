package idgen

// Counter returns values 1,2,3...
// It is not safe for concurrent use. Each owner (eg one conversion run) holds its own Counter,
// so that IDs keep increasing across everything that owner produces.
type Counter struct {
	last int64
}

// NewCounterAfter returns a counter whose first value is last+1
func NewCounterAfter(last int64) *Counter {
	return &Counter{last: last}
}

func (c *Counter) Next() int64 {
	c.last++
	return c.last
}

// Last returns the most recently issued value, or zero if Next has never been called
func (c *Counter) Last() int64 {
	return c.last
}
