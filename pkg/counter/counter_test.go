package counter

import (
	"reflect"
	"sync"
	"testing"

	"github.com/NivBraz/funcbox/internal/models"
)

func TestCounter_Top(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		n        int
		expected []models.WordCount
	}{
		{
			name:  "Limit",
			words: []string{"b", "a", "b", "c", "b", "a"},
			n:     2,
			expected: []models.WordCount{
				{Word: "b", Count: 3},
				{Word: "a", Count: 2},
			},
		},
		{
			name:  "Ties Alphabetical",
			words: []string{"pear", "apple", "fig"},
			n:     0,
			expected: []models.WordCount{
				{Word: "apple", Count: 1},
				{Word: "fig", Count: 1},
				{Word: "pear", Count: 1},
			},
		},
		{
			name:     "Empty",
			words:    nil,
			n:        5,
			expected: []models.WordCount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddAll(tt.words)
			if got := c.Top(tt.n); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Top() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCounter_Max(t *testing.T) {
	c := New()
	if _, ok := c.Max(); ok {
		t.Error("Max() on empty counter reported ok")
	}

	c.AddAll([]string{"the", "fox", "and", "the", "dog", "and", "the"})
	got, ok := c.Max()
	if !ok {
		t.Fatal("Max() reported empty counter")
	}
	if got.Word != "the" || got.Count != 3 {
		t.Errorf("Max() = %+v, want the/3", got)
	}
	if c.Total() != 7 {
		t.Errorf("Total() = %d, want 7", c.Total())
	}
	if c.Unique() != 4 {
		t.Errorf("Unique() = %d, want 4", c.Unique())
	}
}

func TestCounter_MaxFirstSeen(t *testing.T) {
	tests := []struct {
		name   string
		words  []string
		want   models.WordCount
		wantOK bool
	}{
		{name: "Empty", words: nil, wantOK: false},
		{
			name:   "Tie Keeps First Seen",
			words:  []string{"zebra", "apple", "zebra", "apple"},
			want:   models.WordCount{Word: "zebra", Count: 2},
			wantOK: true,
		},
		{
			name:   "Higher Count Wins",
			words:  []string{"zebra", "apple", "apple"},
			want:   models.WordCount{Word: "apple", Count: 2},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.AddAll(tt.words)
			got, ok := c.MaxFirstSeen()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("MaxFirstSeen() = %+v, %v, want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}

	c := New()
	c.AddAll([]string{"zebra", "apple", "zebra", "apple"})
	if top, _ := c.Max(); top.Word != "apple" {
		t.Errorf("Max() = %+v, want alphabetical tie-break on apple", top)
	}
}

func TestCounter_Concurrent(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Add("word")
			}
		}()
	}
	wg.Wait()

	if got := c.Counts()["word"]; got != 800 {
		t.Errorf("Counts()[word] = %d, want 800", got)
	}
}
