package aggregate

import "sort"

// Counter counts occurrences of string keys while remembering the order in
// which keys were first seen. Insertion order is what makes top-N selection
// over free-form fields deterministic across runs.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments the count for key
func (c *Counter) Add(key string) {
	c.AddN(key, 1)
}

// AddN increments the count for key by n
func (c *Counter) AddN(key string, n int) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
}

// Get returns the count for key, zero when absent
func (c *Counter) Get(key string) int {
	return c.counts[key]
}

// Sum returns the total across all keys
func (c *Counter) Sum() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Len returns the number of distinct keys
func (c *Counter) Len() int {
	return len(c.order)
}

// Keys returns all keys in first-encountered order
func (c *Counter) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entry pairs a key with its count
type Entry struct {
	Key   string
	Count int
}

// Entries returns all entries in first-encountered order
func (c *Counter) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Entry{Key: k, Count: c.counts[k]})
	}
	return out
}

// Top returns up to n entries sorted by descending count. The sort is
// stable over first-encountered order, so ties resolve the same way on
// every run. n <= 0 returns everything.
func (c *Counter) Top(n int) []Entry {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Percent derives a percentage from a count and its enclosing total.
// A zero total yields 0 rather than a division failure; the guard applies
// uniformly everywhere percentages are derived.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
