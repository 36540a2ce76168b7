package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryConfig controls transport-level retries on outbound service calls.
// The default of a single attempt keeps remote failures surfacing as plain
// per-item failures; operators can raise it per connector.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

// Do runs fn with the configured retry policy, honoring ctx cancellation.
func (rc *RetryConfig) Do(ctx context.Context, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(rc.Attempts),
		retry.Delay(rc.Delay),
		retry.MaxDelay(rc.MaxDelay),
		retry.LastErrorOnly(true),
	)
}
