package stats

import (
	"math"
	"sort"
)

// Count is one distinct value and how often it occurred.
type Count struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Counter tallies category labels, remembering the order in which each
// distinct label was first seen. Empty labels are missing values and are
// never counted.
type Counter struct {
	index  map[string]int
	counts []Count
}

func NewCounter() *Counter {
	return &Counter{index: make(map[string]int)}
}

// CountValues tallies values in order.
func CountValues(values ...string) *Counter {
	c := NewCounter()
	for _, v := range values {
		c.Add(v)
	}
	return c
}

func (c *Counter) Add(value string) {
	if value == "" {
		return
	}
	if i, ok := c.index[value]; ok {
		c.counts[i].Count++
		return
	}
	c.index[value] = len(c.counts)
	c.counts = append(c.counts, Count{Value: value, Count: 1})
}

// Len returns the number of distinct values.
func (c *Counter) Len() int { return len(c.counts) }

// Total returns the number of counted values.
func (c *Counter) Total() int {
	total := 0
	for _, e := range c.counts {
		total += e.Count
	}
	return total
}

func (c *Counter) Get(value string) int {
	if i, ok := c.index[value]; ok {
		return c.counts[i].Count
	}
	return 0
}

// Ordered returns the counts in first-seen order.
func (c *Counter) Ordered() []Count {
	out := make([]Count, len(c.counts))
	copy(out, c.counts)
	return out
}

// Sorted returns the counts by descending frequency. Equal counts keep
// first-seen order.
func (c *Counter) Sorted() []Count {
	out := c.Ordered()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Top returns at most n entries of Sorted. n <= 0 means all.
func (c *Counter) Top(n int) []Count {
	out := c.Sorted()
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Mode returns the most frequent value, or false when nothing was counted.
func (c *Counter) Mode() (string, bool) {
	if len(c.counts) == 0 {
		return "", false
	}
	best := c.counts[0]
	for _, e := range c.counts[1:] {
		if e.Count > best.Count {
			best = e
		}
	}
	return best.Value, true
}

// MeanCount returns the mean number of occurrences per distinct value.
func (c *Counter) MeanCount() (float64, bool) {
	if len(c.counts) == 0 {
		return 0, false
	}
	return float64(c.Total()) / float64(len(c.counts)), true
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// meanOf returns the fraction of true values.
func meanOf(values []bool) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return float64(n) / float64(len(values)), true
}
