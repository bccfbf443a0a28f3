package device

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Validation constants.
const (
	maxNameLength = 100
	maxIDLength   = 64

	MinBrightness = 0
	MaxBrightness = 100
)

// ValidateName checks if a device name is valid.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return invalid("name", fmt.Sprintf("%q", name), "cannot be empty")
	}
	if len(trimmed) > maxNameLength {
		return invalid("name", fmt.Sprintf("%q", name), fmt.Sprintf("exceeds %d characters", maxNameLength))
	}
	return nil
}

// ValidateID checks an explicitly supplied device ID. Empty IDs are
// accepted because the constructors generate one.
func ValidateID(id string) error {
	if len(id) > maxIDLength {
		return invalid("id", fmt.Sprintf("%q", id), fmt.Sprintf("exceeds %d characters", maxIDLength))
	}
	if strings.ContainsAny(id, " \t\r\n/#+") {
		return invalid("id", fmt.Sprintf("%q", id), "must not contain whitespace, '/', '#' or '+'")
	}
	return nil
}

// ValidateRatedPower checks a nameplate wattage.
func ValidateRatedPower(watts float64) error {
	if !isFinite(watts) || watts <= 0 {
		return invalid("rated power", watts, "must be a positive number of watts")
	}
	return nil
}

// ValidateBrightness checks a bulb brightness level.
func ValidateBrightness(level int) error {
	if level < MinBrightness || level > MaxBrightness {
		return invalid("brightness", level, fmt.Sprintf("must be between %d and %d", MinBrightness, MaxBrightness))
	}
	return nil
}

// ValidateMaxCurrent checks an outlet's current rating.
func ValidateMaxCurrent(amps float64) error {
	if !isFinite(amps) || amps <= 0 {
		return invalid("max current", amps, "must be a positive number of amps")
	}
	return nil
}

// ValidateTemperature rejects NaN and infinite temperatures.
func ValidateTemperature(field string, celsius float64) error {
	if !isFinite(celsius) {
		return invalid(field, celsius, "must be a finite number")
	}
	return nil
}

// GenerateID creates a new UUID for a device.
func GenerateID() string {
	return uuid.New().String()
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
