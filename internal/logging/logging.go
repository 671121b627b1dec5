package logging

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	levelDebug = "DEBUG"
	levelInfo  = "INFO"
	levelWarn  = "WARN"
	levelError = "ERROR"
)

const (
	// timestampLayout renders local time with millisecond precision.
	timestampLayout = "2006-01-02 15:04:05.000"

	defaultQueueSize = 1024
)

var (
	// ErrNotInitialized indicates Get was called before Init.
	ErrNotInitialized = errors.New("logging: not initialized")
	// ErrAlreadyInitialized indicates Init was called twice; the first
	// logger is never silently replaced.
	ErrAlreadyInitialized = errors.New("logging: already initialized")
)

// Logger is a cloneable handle onto the background log writer. All methods
// are safe for concurrent use; the zero value is not usable, construct with
// New or Init.
type Logger struct {
	ch   chan string
	done chan struct{}

	mu     sync.RWMutex
	closed bool

	clock     func() time.Time
	queueSize int
	out       io.WriteCloser
	errOut    io.Writer
	errLimit  *rate.Limiter
}

// Option configures Logger construction.
type Option func(*Logger)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(l *Logger) {
		l.clock = clock
	}
}

// WithQueueSize overrides the capacity of the record queue.
func WithQueueSize(n int) Option {
	return func(l *Logger) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// WithOutput overrides the log destination; the path argument to New is
// ignored when set. Primarily for tests.
func WithOutput(w io.WriteCloser) Option {
	return func(l *Logger) {
		l.out = w
	}
}

// WithErrorOutput overrides the destination for write-failure reports,
// primarily for tests.
func WithErrorOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.errOut = w
	}
}

// New opens the log file in create-or-append mode and starts the background
// consumer. An unopenable file is reported here, in the caller's goroutine,
// rather than killing the consumer later.
func New(path string, opts ...Option) (*Logger, error) {
	l := &Logger{
		done:      make(chan struct{}),
		clock:     time.Now,
		queueSize: defaultQueueSize,
		errOut:    os.Stderr,
		errLimit:  rate.NewLimiter(rate.Every(time.Second), 5),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.out == nil {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", path, err)
		}
		l.out = file
	}
	l.ch = make(chan string, l.queueSize)

	go l.consume()

	return l, nil
}

// consume owns the file handle exclusively: it drains the queue in arrival
// order, writes one line per record, and flushes after every write. A failed
// write is reported to stderr and the loop keeps going.
func (l *Logger) consume() {
	defer close(l.done)
	defer func() {
		_ = l.out.Close()
	}()

	w := bufio.NewWriter(l.out)
	for msg := range l.ch {
		if _, err := w.WriteString(msg + "\n"); err != nil {
			l.reportWriteError(err)
			w.Reset(l.out)
			continue
		}
		if err := w.Flush(); err != nil {
			l.reportWriteError(err)
			// Reset clears bufio's sticky error; the failed record is lost
			// but later records can reach the file again.
			w.Reset(l.out)
		}
	}
	_ = w.Flush()
}

// reportWriteError sends per-record I/O failures to the fallback stream.
// The token bucket keeps a stalled disk from flooding stderr.
func (l *Logger) reportWriteError(err error) {
	if l.errLimit.Allow() {
		fmt.Fprintf(l.errOut, "wg-bridge: failed to write log: %v\n", err)
	}
}

func (l *Logger) log(level, message string) {
	timestamp := l.clock().Format(timestampLayout)
	line := fmt.Sprintf("%-20s - %-8s  %s", timestamp, level, message)

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return
	}
	l.ch <- line
}

// Debug records a DEBUG message. The body is eliminated entirely in default
// builds; compile with -tags debug to enable it.
func (l *Logger) Debug(message string) {
	if !debugEnabled {
		return
	}
	l.log(levelDebug, message)
}

// Info records an INFO message.
func (l *Logger) Info(message string) {
	l.log(levelInfo, message)
}

// Warn records a WARN message.
func (l *Logger) Warn(message string) {
	l.log(levelWarn, message)
}

// Error records an ERROR message.
func (l *Logger) Error(message string) {
	l.log(levelError, message)
}

// Close drains the queue, flushes every buffered record to disk, and closes
// the file. It blocks until the consumer has finished and is safe to call
// more than once; records issued after Close are dropped.
func (l *Logger) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.done
		return nil
	}
	l.closed = true
	close(l.ch)
	l.mu.Unlock()

	<-l.done
	return nil
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// Init constructs the process-wide logger exactly once. A second call
// returns ErrAlreadyInitialized and leaves the existing logger in place.
func Init(path string, opts ...Option) (*Logger, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger != nil {
		return nil, ErrAlreadyInitialized
	}

	l, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	defaultLogger = l
	return l, nil
}

// Get returns the process-wide logger installed by Init, or
// ErrNotInitialized if Init has not run.
func Get() (*Logger, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	if defaultLogger == nil {
		return nil, ErrNotInitialized
	}
	return defaultLogger, nil
}
