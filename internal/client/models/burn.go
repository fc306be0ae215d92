package models

import (
	"fmt"
	"time"
)

// BurnTimer is the per-message self-destruct setting. The zero-ish value
// BurnOff means the message never expires.
type BurnTimer string

const (
	BurnOff BurnTimer = "off"
	Burn10s BurnTimer = "10s"
	Burn1h  BurnTimer = "1h"
	Burn24h BurnTimer = "24h"
)

// ParseBurnTimer validates a raw burn-timer string. Unknown values map to
// BurnOff with an error so a bad remote document degrades to "keep".
func ParseBurnTimer(s string) (BurnTimer, error) {
	switch BurnTimer(s) {
	case BurnOff, Burn10s, Burn1h, Burn24h:
		return BurnTimer(s), nil
	case "":
		return BurnOff, nil
	}
	return BurnOff, fmt.Errorf("unknown burn timer %q", s)
}

// Duration returns the countdown length for the timer. BurnOff returns 0.
func (b BurnTimer) Duration() time.Duration {
	switch b {
	case Burn10s:
		return 10 * time.Second
	case Burn1h:
		return time.Hour
	case Burn24h:
		return 24 * time.Hour
	}
	return 0
}
