// Package compute holds the fixed workloads used by the toy services.
package compute

import (
	"context"
	"fmt"
	"time"

	"github.com/NivBraz/funcbox/pkg/transform"
)

// MaxFibonacci is the largest n the services will compute on request.
const MaxFibonacci = 45

// Fibonacci returns the n-th Fibonacci number using the naive recursive
// definition. It is intentionally exponential so callers get a CPU-bound
// request. Negative n returns 0.
func Fibonacci(n int) int {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return Fibonacci(n-1) + Fibonacci(n-2)
}

// FibonacciContext runs Fibonacci in the background and returns early with
// ctx's error once ctx is done. The computation itself keeps running until it
// finishes, so callers should bound n.
func FibonacciContext(ctx context.Context, n int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	done := make(chan int, 1)
	go func() {
		done <- Fibonacci(n)
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case v := <-done:
		return v, nil
	}
}

// Sleep blocks for the given number of seconds and returns it.
func Sleep(ctx context.Context, seconds int) (int, error) {
	if seconds < 0 {
		return 0, fmt.Errorf("%w: negative sleep %d", transform.ErrInvalidInput, seconds)
	}

	timer := time.NewTimer(time.Duration(seconds) * time.Second)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-timer.C:
		return seconds, nil
	}
}
