package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/NivBraz/funcbox/internal/config"
	"github.com/NivBraz/funcbox/internal/models"
	"github.com/NivBraz/funcbox/pkg/counter"
	"github.com/NivBraz/funcbox/pkg/fetcher"
	"github.com/NivBraz/funcbox/pkg/parser"
	"github.com/NivBraz/funcbox/pkg/wordbank"
)

// App represents the word count pipeline
type App struct {
	config   *config.Config
	fetcher  *fetcher.Fetcher
	wordBank *wordbank.WordBank
	logger   *zap.Logger
	progress bool
}

type Option func(*App)

// WithoutProgress disables the terminal progress bars.
func WithoutProgress() Option {
	return func(a *App) { a.progress = false }
}

// New creates a new instance of the application
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f := fetcher.New(fetcher.FetcherConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		Timeout:           time.Duration(cfg.HTTPClient.Timeout) * time.Second,
		UserAgent:         cfg.HTTPClient.UserAgent,
		MaxRetries:        cfg.HTTPClient.MaxRetries,
		InitialBackoff:    time.Duration(cfg.HTTPClient.RetryDelay) * time.Second,
	})

	a := &App{
		config:   cfg,
		fetcher:  f,
		wordBank: wordbank.New(),
		logger:   logger,
		progress: true,
	}
	for _, opt := range opts {
		opt(a)
	}

	if src := cfg.WordProcessing.WordBank; src != "" {
		wordBankCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		logger.Info("loading word bank", zap.String("source", src))
		if err := a.initializeWordBank(wordBankCtx, src); err != nil {
			return nil, fmt.Errorf("failed to initialize word bank: %w", err)
		}
		logger.Info("word bank loaded", zap.Int("words", a.wordBank.Len()))
	}

	return a, nil
}

// Run counts the words of every source and returns the most frequent ones.
// Failed sources are reported in the error while the partial result is
// still returned.
func (a *App) Run(ctx context.Context, sources []string) (*models.Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources given")
	}
	startTime := time.Now()

	wordChan := make(chan []string, a.config.Concurrency)
	var fetchWg sync.WaitGroup
	var processWg sync.WaitGroup

	counts := counter.New()
	var failedMu sync.Mutex
	var failed []string

	bar := a.newBar(len(sources), "Processing sources...")

	// Start word processing goroutine
	processWg.Add(1)
	go func() {
		defer processWg.Done()
		for words := range wordChan {
			for _, word := range words {
				if a.isValidWord(word) {
					counts.Add(word)
				}
			}
		}
	}()

	semaphore := make(chan struct{}, a.config.Concurrency)
	for _, src := range sources {
		fetchWg.Add(1)
		go func(src string) {
			defer fetchWg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := a.processSource(ctx, src, wordChan); err != nil {
				a.logger.Warn("error processing source", zap.String("source", src), zap.Error(err))
				failedMu.Lock()
				failed = append(failed, src)
				failedMu.Unlock()
			}
			bar.Add(1)
		}(src)
	}

	fetchWg.Wait()
	close(wordChan)
	processWg.Wait()
	bar.Finish()

	result := &models.Result{
		TopWords: counts.Top(a.config.Output.TopWordsCount),
	}
	if a.config.Output.IncludeStats {
		result.Stats = &models.Stats{
			UniqueWords:   counts.Unique(),
			TotalWords:    counts.Total(),
			Sources:       len(sources),
			FailedSources: failed,
			TimeElapsed:   int(time.Since(startTime).Milliseconds()),
		}
	}

	if len(failed) > 0 {
		return result, fmt.Errorf("failed to process %d of %d sources", len(failed), len(sources))
	}
	return result, nil
}

// processSource reads a single source and sends its words downstream
func (a *App) processSource(ctx context.Context, src string, wordChan chan<- []string) error {
	content, err := a.read(ctx, src)
	if err != nil {
		return err
	}

	var words []string
	if parser.LooksLikeHTML(content) {
		words, err = parser.ParseWords(content)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", src, err)
		}
	} else {
		words = parser.Tokenize(string(content))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case wordChan <- words:
	}
	return nil
}

// read fetches http(s) sources and reads everything else from disk
func (a *App) read(ctx context.Context, src string) ([]byte, error) {
	if isURL(src) {
		content, err := a.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", src, err)
		}
		return content, nil
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", src, err)
	}
	return content, nil
}

func (a *App) initializeWordBank(ctx context.Context, src string) error {
	content, err := a.read(ctx, src)
	if err != nil {
		return err
	}

	words := parser.ParseWordBank(content)
	if len(words) == 0 {
		return fmt.Errorf("word bank %s is empty", src)
	}

	bar := a.newBar(len(words), "Loading word bank...")
	for _, word := range words {
		a.wordBank.Add(word)
		bar.Add(1)
	}
	bar.Finish()
	return nil
}

func (a *App) newBar(total int, description string) *progressbar.ProgressBar {
	if !a.progress {
		return progressbar.DefaultSilent(int64(total))
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}

func (a *App) isValidWord(word string) bool {
	return len([]rune(word)) >= a.config.WordProcessing.MinWordLength && a.wordBank.Accepts(word)
}

func validateConfig(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid rate limit: requests per second must be positive")
	}
	if cfg.Concurrency <= 0 {
		return fmt.Errorf("invalid concurrency: must be positive")
	}
	return nil
}

func isURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
