package wordbank

import (
	"strings"
	"sync"
)

// WordBank is a set of accepted words. An empty bank accepts everything.
type WordBank struct {
	words map[string]struct{}
	mu    sync.RWMutex
}

func New(words ...string) *WordBank {
	wb := &WordBank{
		words: make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		wb.Add(w)
	}
	return wb
}

func (wb *WordBank) Add(word string) {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	wb.words[strings.ToLower(word)] = struct{}{}
}

func (wb *WordBank) Len() int {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	return len(wb.words)
}

// Accepts reports whether word should be counted.
func (wb *WordBank) Accepts(word string) bool {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	if len(wb.words) == 0 {
		return true
	}
	_, exists := wb.words[strings.ToLower(word)]
	return exists
}
