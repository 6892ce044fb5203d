package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCoerceWithinRange(t *testing.T) {
	// GIVEN
	value := 50.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 50.0, result)
}

func TestCoerceBelowRange(t *testing.T) {
	// GIVEN
	value := -10.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestCoerceAboveRange(t *testing.T) {
	// GIVEN
	value := 110.0

	// WHEN
	result := Coerce(value, 0, 100)

	// THEN
	assert.Equal(t, 100.0, result)
}

func TestRatio(t *testing.T) {
	// GIVEN
	target := 40.0

	// WHEN
	result := Ratio(target, 30, 50)

	// THEN
	assert.Equal(t, 0.5, result)
}
