package configuration

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinDownValuePowerOff(t *testing.T) {
	// GIVEN
	value := SpinDownPowerOff

	// WHEN
	isPowerOff := value.IsPowerOff()
	_, err := value.Duty()

	// THEN
	assert.True(t, isPowerOff)
	assert.Error(t, err)
}

func TestSpinDownValueDuty(t *testing.T) {
	// GIVEN
	value := SpinDownValue("25")

	// WHEN
	duty, err := value.Duty()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 25, duty)
}

func TestSpinDownValueHookConvertsInt(t *testing.T) {
	// GIVEN
	hook := spinDownValueHookFunc()
	target := reflect.TypeOf(SpinDownValue(""))

	// WHEN
	result, err := hook(reflect.TypeOf(0), target, 25)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, SpinDownValue("25"), result)
}

func TestSpinDownValueHookConvertsYamlOffBool(t *testing.T) {
	// GIVEN: yaml reads an unquoted "off" as boolean false
	hook := spinDownValueHookFunc()
	target := reflect.TypeOf(SpinDownValue(""))

	// WHEN
	result, err := hook(reflect.TypeOf(false), target, false)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, SpinDownPowerOff, result)
}

func TestSpinDownValueHookPassesThroughString(t *testing.T) {
	// GIVEN
	hook := spinDownValueHookFunc()
	target := reflect.TypeOf(SpinDownValue(""))

	// WHEN
	result, err := hook(reflect.TypeOf(""), target, "off")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, SpinDownValue("off"), result)
}
