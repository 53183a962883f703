package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration validates that a duration is greater than zero.
// Used for timeouts and refresh intervals where zero would disable the
// mechanism entirely.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}
