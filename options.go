package dilithium

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/KarpelesLab/dilithium/internal/log"
)

// DefaultMaxAttempts is the default cap on signing attempts. Each attempt
// succeeds with probability above 1/7 at every level, so the cap is only
// reached on broken inputs.
const DefaultMaxAttempts = 1000

// config holds the settings applied by Options.
type config struct {
	maxAttempts int
	logger      *log.Logger
	rand        io.Reader
	parallelism int
}

func defaultConfig() config {
	return config{
		maxAttempts: DefaultMaxAttempts,
		logger:      log.Default().Module("dilithium"),
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// validate checks the settings against the parameters of a level. The y
// nonce of the last attempt must still fit in 16 bits.
func (c *config) validate(p *Params) error {
	if c.maxAttempts < 1 {
		return fmt.Errorf("%w: max attempts %d", ErrInvalidOption, c.maxAttempts)
	}
	if c.maxAttempts*p.L > 1<<16 {
		return fmt.Errorf("%w: max attempts %d exceed the nonce space at level %d",
			ErrInvalidOption, c.maxAttempts, p.Level)
	}
	if c.parallelism < 1 {
		return fmt.Errorf("%w: parallelism %d", ErrInvalidOption, c.parallelism)
	}
	if c.logger == nil {
		return fmt.Errorf("%w: nil logger", ErrInvalidOption)
	}
	return nil
}

// Option configures a Scheme.
type Option func(*config)

// WithMaxAttempts caps the number of signing attempts. Sign returns
// ErrRetriesExhausted when the cap is reached.
func WithMaxAttempts(n int) Option {
	return func(c *config) { c.maxAttempts = n }
}

// WithLogger sets the logger. Records carry a "module" attribute set to
// "dilithium". Secrets are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l == nil {
			c.logger = nil
			return
		}
		c.logger = log.NewWithHandler(l.Handler()).Module("dilithium")
	}
}

// WithRandomness enables hedged signing: 32 bytes read from r are mixed
// into the per-signature seed. Without it signing is deterministic.
func WithRandomness(r io.Reader) Option {
	return func(c *config) { c.rand = r }
}

// WithParallelism sets the number of goroutines used to expand the public
// matrix. The output does not depend on it.
func WithParallelism(n int) Option {
	return func(c *config) { c.parallelism = n }
}
