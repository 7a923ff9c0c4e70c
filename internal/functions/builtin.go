package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/NivBraz/funcbox/pkg/compute"
	"github.com/NivBraz/funcbox/pkg/counter"
	"github.com/NivBraz/funcbox/pkg/parser"
	"github.com/NivBraz/funcbox/pkg/transform"
)

// Builtin returns a registry holding every example function.
func Builtin() *Registry {
	r := NewRegistry()
	for _, f := range builtins() {
		if err := r.Register(f); err != nil {
			panic(err)
		}
	}
	return r
}

func builtins() []Function {
	return []Function{
		{
			Name:        "increment",
			Description: "Add one to an integer",
			Run: func(_ context.Context, arg string) (string, error) {
				n, err := transform.Increment(arg)
				if err != nil {
					return "", err
				}
				return strconv.Itoa(n), nil
			},
		},
		{
			Name:        "add",
			Description: "Replace each digit with the last digit of itself plus 7",
			Run: func(_ context.Context, arg string) (string, error) {
				return transform.AddSeven(arg), nil
			},
		},
		{
			Name:        "subtract",
			Description: "Replace each digit with the last digit of itself minus 7",
			Run: func(_ context.Context, arg string) (string, error) {
				return transform.SubtractSeven(arg)
			},
		},
		{
			Name:        "encrypt",
			Description: "Read a file and shift every digit in it by 7",
			Run: func(_ context.Context, arg string) (string, error) {
				text, err := readFile(arg)
				if err != nil {
					return "", err
				}
				return transform.AddSeven(text), nil
			},
		},
		{
			Name:        "move_left",
			Description: "Shift every letter 7 positions to the left",
			Run: func(_ context.Context, arg string) (string, error) {
				return transform.MoveLeft(arg), nil
			},
		},
		{
			Name:        "convert_num",
			Description: "Encode letters as two-digit numbers (a-z 01-26, A-Z 27-52)",
			Run: func(_ context.Context, arg string) (string, error) {
				return transform.EncodeLetters(arg), nil
			},
		},
		{
			Name:        "convert_char",
			Description: "Decode two-digit numbers 01-52 back into letters",
			Run: func(_ context.Context, arg string) (string, error) {
				return transform.DecodeLetters(arg)
			},
		},
		{
			Name:        "sleep",
			Description: "Sleep for the given number of seconds",
			Run: func(ctx context.Context, arg string) (string, error) {
				n, err := parseInt(arg)
				if err != nil {
					return "", err
				}
				slept, err := compute.Sleep(ctx, n)
				if err != nil {
					return "", err
				}
				return strconv.Itoa(slept), nil
			},
		},
		{
			Name:        "read_text",
			Description: "Print the contents of a file",
			Run: func(_ context.Context, arg string) (string, error) {
				return readFile(arg)
			},
		},
		{
			Name:        "split_words",
			Description: "Split text into lowercase words (JSON array)",
			Run: func(_ context.Context, arg string) (string, error) {
				words := parser.Tokenize(arg)
				if words == nil {
					words = []string{}
				}
				return marshal(words)
			},
		},
		{
			Name:        "count_words",
			Description: "Count word occurrences in text (JSON object)",
			Run: func(_ context.Context, arg string) (string, error) {
				c := counter.New()
				c.AddAll(parser.Tokenize(arg))
				return marshal(c.Counts())
			},
		},
		{
			Name:        "get_max",
			Description: "Highest count in a JSON object of word counts",
			Run:         getMax,
		},
		{
			Name:        "word_count",
			Description: "Most frequent word in a file as \"<count> <word>\"",
			Run: func(_ context.Context, arg string) (string, error) {
				text, err := readFile(arg)
				if err != nil {
					return "", err
				}
				c := counter.New()
				c.AddAll(parser.Tokenize(text))
				top, ok := c.MaxFirstSeen()
				if !ok {
					return "", fmt.Errorf("%w: %s contains no words", transform.ErrInvalidInput, arg)
				}
				return fmt.Sprintf("%d %s", top.Count, top.Word), nil
			},
		},
		{
			Name:        "fibonacci",
			Description: "Naive recursive Fibonacci number",
			Run: func(ctx context.Context, arg string) (string, error) {
				n, err := parseInt(arg)
				if err != nil {
					return "", err
				}
				if n < 0 || n > compute.MaxFibonacci {
					return "", fmt.Errorf("%w: n must be in 0-%d, got %d", transform.ErrInvalidInput, compute.MaxFibonacci, n)
				}
				v, err := compute.FibonacciContext(ctx, n)
				if err != nil {
					return "", err
				}
				return strconv.Itoa(v), nil
			},
		},
	}
}

func getMax(_ context.Context, arg string) (string, error) {
	var counts map[string]int
	if err := json.Unmarshal([]byte(arg), &counts); err != nil {
		return "", fmt.Errorf("%w: expected a JSON object of counts: %v", transform.ErrInvalidInput, err)
	}

	if len(counts) == 0 {
		return "", fmt.Errorf("%w: no counts given", transform.ErrInvalidInput)
	}

	first := true
	var max int
	for _, n := range counts {
		if first || n > max {
			max, first = n, false
		}
	}
	return strconv.Itoa(max), nil
}

func readFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving path: %w", err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("error reading file: %w", err)
	}
	return string(data), nil
}

func parseInt(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", transform.ErrInvalidInput, arg)
	}
	return n, nil
}

func marshal(v any) (string, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error encoding result: %w", err)
	}
	return string(out), nil
}
