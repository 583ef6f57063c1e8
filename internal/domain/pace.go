package domain

import (
	"fmt"
	"math"
	"strings"
)

// Pace returns the minutes-per-mile pace for the given distance and duration,
// formatted as "M:SS/mi".
func Pace(distanceMiles float64, d Duration) (string, error) {
	if distanceMiles <= 0 || math.IsNaN(distanceMiles) {
		return "", fmt.Errorf("%w: distance_miles must be > 0", ErrInvalidInput)
	}
	pace := d.TotalMinutes() / distanceMiles
	minutes := math.Floor(pace)
	seconds := math.Round((pace - minutes) * 60)
	if seconds == 60 {
		minutes++
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d/mi", int64(minutes), int64(seconds)), nil
}

// FormatDuration renders a duration as "1h 2m 3s", omitting zero parts.
func FormatDuration(d Duration) string {
	parts := make([]string, 0, 3)
	if d.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", d.Hours))
	}
	if d.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", d.Minutes))
	}
	if d.Seconds > 0 {
		parts = append(parts, fmt.Sprintf("%ds", d.Seconds))
	}
	if len(parts) == 0 {
		return "0s"
	}
	return strings.Join(parts, " ")
}
