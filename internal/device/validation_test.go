package device

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Desk", false},
		{"spaces inside", "Living Room Lamp", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"max length", strings.Repeat("a", 100), false},
		{"too long", strings.Repeat("a", 101), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID(""))
	assert.NoError(t, ValidateID("kitchen-bulb_01"))
	for _, bad := range []string{"a b", "a/b", "a#", "a+b", strings.Repeat("x", 65)} {
		assert.ErrorIs(t, ValidateID(bad), ErrValidation, bad)
	}
}

func TestValidateRatedPower(t *testing.T) {
	assert.NoError(t, ValidateRatedPower(0.5))
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, ValidateRatedPower(bad), ErrValidation)
	}
}

func TestValidateBrightness(t *testing.T) {
	assert.NoError(t, ValidateBrightness(MinBrightness))
	assert.NoError(t, ValidateBrightness(MaxBrightness))
	assert.ErrorIs(t, ValidateBrightness(-1), ErrValidation)
	assert.ErrorIs(t, ValidateBrightness(101), ErrValidation)
}

func TestValidateMaxCurrent(t *testing.T) {
	assert.NoError(t, ValidateMaxCurrent(10))
	assert.ErrorIs(t, ValidateMaxCurrent(0), ErrValidation)
	assert.ErrorIs(t, ValidateMaxCurrent(math.NaN()), ErrValidation)
}

func TestParseKindAndMode(t *testing.T) {
	for _, k := range AllKinds() {
		got, err := ParseKind(string(k))
		assert.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := ParseKind("Bulb")
	assert.ErrorIs(t, err, ErrValidation)

	for _, m := range AllModes() {
		got, err := ParseMode(string(m))
		assert.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err = ParseMode("Off")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Bulb", KindBulb.Label())
	assert.Equal(t, "Thermostat", KindThermostat.Label())
	assert.Equal(t, "Outlet", KindOutlet.Label())
}

func TestGenerateID_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateID()
		assert.NoError(t, ValidateID(id))
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
}
