package kvmap

import (
	"fmt"

	"github.com/c360/containerkit/errors"
)

// Config contains the rehash policy for Rehashing maps.
type Config struct {
	// MinKeysForRehash is the number of fresh insertions required before a
	// rehash is even considered.
	MinKeysForRehash int `json:"min_keys_for_rehash" schema:"editable,type:int,description:Fresh insertions required before a rehash is considered,min:0"`

	// GrowthMultiplier must exceed 1.0; a rehash triggers once the current
	// length exceeds the length at the last rehash times this multiplier.
	GrowthMultiplier float64 `json:"growth_multiplier" schema:"editable,type:float,description:Growth factor the map length must exceed to trigger a rehash,min:1.0"`
}

// DefaultConfig returns the default rehash policy.
func DefaultConfig() Config {
	return Config{
		MinKeysForRehash: 64,
		GrowthMultiplier: 1.5,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MinKeysForRehash < 0 {
		return errors.WrapInvalid(errors.ErrInvalidData, "kvmap", "Validate",
			fmt.Sprintf("min_keys_for_rehash must be non-negative, got %d", c.MinKeysForRehash))
	}

	if c.GrowthMultiplier <= 1.0 {
		return errors.WrapInvalid(errors.ErrInvalidData, "kvmap", "Validate",
			fmt.Sprintf("growth_multiplier must exceed 1.0, got %v", c.GrowthMultiplier))
	}

	return nil
}
