package awtrix

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// VerificationOptions configures how a settings write is read back
type VerificationOptions struct {
	// MaxRetries is the number of read-backs after the first one
	// Default: 3
	MaxRetries int

	// InitialDelay gives the firmware time to apply the change
	// Default: 500ms
	InitialDelay time.Duration

	// RetryDelay is the delay between read-backs
	// Default: 1s
	RetryDelay time.Duration

	// UseExponentialBackoff doubles RetryDelay after each attempt, up to MaxRetryDelay
	// Default: true
	UseExponentialBackoff bool

	// Default: 5s
	MaxRetryDelay time.Duration
}

// DefaultVerificationOptions returns sensible defaults for verification
func DefaultVerificationOptions() *VerificationOptions {
	return &VerificationOptions{
		MaxRetries:            3,
		InitialDelay:          500 * time.Millisecond,
		RetryDelay:            1 * time.Second,
		UseExponentialBackoff: true,
		MaxRetryDelay:         5 * time.Second,
	}
}

// VerificationResult is the outcome of reading settings back from the device
type VerificationResult struct {
	Success    bool
	Attempts   int
	Actual     *Settings // last settings read, nil if none could be read
	Mismatches []string
	Error      error
}

// SettingsMismatches lists every key set in expected whose value differs
// in actual. Keys expected leaves unset are not compared.
func SettingsMismatches(expected, actual Settings) []string {
	var mismatches []string
	for _, f := range settingFields {
		want, ok := f.get(&expected)
		if !ok {
			continue
		}
		got, ok := f.get(&actual)
		if !ok {
			got = notSet
		}
		if got != want {
			mismatches = append(mismatches, fmt.Sprintf("%s: expected %s, got %s", f.Key, want, got))
		}
	}
	return mismatches
}

func formatMismatches(mismatches []string) string {
	switch len(mismatches) {
	case 0:
		return "none"
	case 1:
		return mismatches[0]
	}
	return fmt.Sprintf("%d mismatches: %s", len(mismatches), strings.Join(mismatches, "; "))
}

// sleepCtx waits for d or until ctx ends
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// VerifySettings reads the settings back until every key set in expected
// matches, retrying read errors and mismatches
func (c *Client) VerifySettings(ctx context.Context, expected Settings, opts *VerificationOptions) *VerificationResult {
	if opts == nil {
		opts = DefaultVerificationOptions()
	}
	result := &VerificationResult{}

	if err := sleepCtx(ctx, opts.InitialDelay); err != nil {
		result.Error = err
		return result
	}

	delay := opts.RetryDelay
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, delay); err != nil {
				result.Error = err
				return result
			}
			if opts.UseExponentialBackoff {
				delay *= 2
				if delay > opts.MaxRetryDelay {
					delay = opts.MaxRetryDelay
				}
			}
		}
		result.Attempts++

		actual, err := c.Settings(ctx)
		if err != nil {
			result.Error = fmt.Errorf("attempt %d: failed to read settings: %w", attempt+1, err)
			continue
		}
		result.Actual = &actual
		result.Mismatches = SettingsMismatches(expected, actual)
		if len(result.Mismatches) == 0 {
			result.Success = true
			result.Error = nil
			return result
		}
		result.Error = fmt.Errorf("verification failed after %d attempt(s): %s",
			result.Attempts, formatMismatches(result.Mismatches))
	}
	return result
}

// UpdateAndVerify writes s and reads it back
func (c *Client) UpdateAndVerify(ctx context.Context, s Settings, opts *VerificationOptions) *VerificationResult {
	if err := c.UpdateSettings(ctx, s); err != nil {
		return &VerificationResult{Error: fmt.Errorf("update failed: %w", err)}
	}
	return c.VerifySettings(ctx, s, opts)
}

// SafeUpdateResult is the outcome of SafeUpdateSettings
type SafeUpdateResult struct {
	Success           bool
	Update            *VerificationResult
	RollbackAttempted bool
	RollbackSucceeded bool
	Rollback          *VerificationResult
	Error             error
}

// String returns a one-paragraph summary
func (r *SafeUpdateResult) String() string {
	switch {
	case r.Success:
		return fmt.Sprintf("Update verified after %d attempt(s)", r.Update.Attempts)
	case r.RollbackSucceeded:
		return fmt.Sprintf("Update failed, previous settings restored\nUpdate error: %v", r.Update.Error)
	case r.RollbackAttempted:
		return fmt.Sprintf("Update failed and rollback failed\nUpdate error: %v\nRollback error: %v",
			r.Update.Error, r.Rollback.Error)
	}
	return fmt.Sprintf("Update failed\nError: %v", r.Error)
}

// SafeUpdateSettings snapshots the current settings, writes update and
// verifies it. When verification fails the snapshot is written back.
func (c *Client) SafeUpdateSettings(ctx context.Context, update Settings, opts *VerificationOptions) *SafeUpdateResult {
	result := &SafeUpdateResult{}

	snapshot, err := c.Settings(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to snapshot settings: %w", err)
		return result
	}
	c.logger.Debug("Saved settings snapshot before update")

	result.Update = c.UpdateAndVerify(ctx, update, opts)
	if result.Update.Success {
		result.Success = true
		return result
	}

	result.RollbackAttempted = true
	result.Rollback = c.UpdateAndVerify(ctx, snapshot, opts)
	if result.Rollback.Success {
		result.RollbackSucceeded = true
		result.Error = fmt.Errorf("update failed (%w), previous settings restored", result.Update.Error)
	} else {
		result.Error = fmt.Errorf("update failed (%w) and rollback failed: %w", result.Update.Error, result.Rollback.Error)
	}
	return result
}
