package models

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type Stats struct {
	UniqueWords   int      `json:"uniqueWords"`
	TotalWords    int      `json:"totalWords"`
	Sources       int      `json:"sources"`
	FailedSources []string `json:"failedSources,omitempty"`
	TimeElapsed   int      `json:"timeElapsedMs"`
}

type Result struct {
	TopWords []WordCount `json:"topWords"`
	Stats    *Stats      `json:"stats,omitempty"`
}

// FunctionInfo describes a registered function.
type FunctionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Invocation is the outcome of calling a function through the gateway.
type Invocation struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Result   string `json:"result"`
	Duration int64  `json:"durationMs"`
}
