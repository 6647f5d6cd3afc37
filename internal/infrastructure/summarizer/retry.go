package summarizer

import "time"

// RetryPolicy describes how many times an external call may be attempted
// and how long to wait between attempts. The sleep function is a field so
// tests can run retries without real delays.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       func(time.Duration)
}

// DefaultRetryPolicy mirrors the summarization backend's tolerances:
// three attempts with a 2s base delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Delay:       2 * time.Second,
		Sleep:       time.Sleep,
	}
}

// Backoff returns the wait before retrying after a rate-limit response on
// the given 1-based attempt: linearly increasing multiples of the base delay.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.Delay * time.Duration(attempt)
}

// Wait sleeps for the given duration using the configured sleep function
func (p RetryPolicy) Wait(d time.Duration) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}
