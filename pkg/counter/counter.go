// Package counter tracks word frequencies.
package counter

import (
	"sync"

	"github.com/NivBraz/funcbox/internal/models"
	"github.com/NivBraz/funcbox/pkg/parser"
)

// Counter is a word frequency table safe for concurrent use.
type Counter struct {
	mu     sync.RWMutex
	counts map[string]int
	// first-seen position of each word
	order map[string]int
	total int
}

func New() *Counter {
	return &Counter{
		counts: make(map[string]int),
		order:  make(map[string]int),
	}
}

// Add records one occurrence of word.
func (c *Counter) Add(word string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(word)
}

// AddAll records one occurrence of each word.
func (c *Counter) AddAll(words []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, w := range words {
		c.add(w)
	}
}

func (c *Counter) add(word string) {
	if _, ok := c.counts[word]; !ok {
		c.order[word] = len(c.order)
	}
	c.counts[word]++
	c.total++
}

// Counts returns a copy of the frequency table.
func (c *Counter) Counts() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int, len(c.counts))
	for w, n := range c.counts {
		out[w] = n
	}
	return out
}

// Total is the number of words added, including repeats.
func (c *Counter) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Unique is the number of distinct words.
func (c *Counter) Unique() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.counts)
}

// Top returns the n most frequent words, ties broken alphabetically.
// n <= 0 returns every word.
func (c *Counter) Top(n int) []models.WordCount {
	c.mu.RLock()
	words := make([]models.WordCount, 0, len(c.counts))
	for word, count := range c.counts {
		words = append(words, models.WordCount{Word: word, Count: count})
	}
	c.mu.RUnlock()

	parser.SortWordCounts(words)

	if n > 0 && len(words) > n {
		return words[:n]
	}
	return words
}

// Max returns the most frequent word. ok is false when nothing was counted.
func (c *Counter) Max() (wc models.WordCount, ok bool) {
	top := c.Top(1)
	if len(top) == 0 {
		return models.WordCount{}, false
	}
	return top[0], true
}

// MaxFirstSeen returns the most frequent word, preferring the word counted
// first among ties. ok is false when nothing was counted.
func (c *Counter) MaxFirstSeen() (wc models.WordCount, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	best := ""
	for word, count := range c.counts {
		if !ok || count > wc.Count || (count == wc.Count && c.order[word] < c.order[best]) {
			wc, best, ok = models.WordCount{Word: word, Count: count}, word, true
		}
	}
	return wc, ok
}
