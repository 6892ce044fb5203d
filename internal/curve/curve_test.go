package curve

import (
	"testing"

	"github.com/CameraRick/onAir-fanControl/internal/configuration"
	"github.com/stretchr/testify/assert"
)

func createLinearCurveConfig(points ...configuration.CurvePointConfig) configuration.CurveConfig {
	return configuration.CurveConfig{
		Mode:   configuration.CurveModeLinear,
		Points: points,
	}
}

func createSteppedCurveConfig(points ...configuration.CurvePointConfig) configuration.CurveConfig {
	return configuration.CurveConfig{
		Mode:   configuration.CurveModeStepped,
		Points: points,
	}
}

func TestLinearCurveInterpolation(t *testing.T) {
	// GIVEN
	curve, err := New(createLinearCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))
	assert.NoError(t, err)

	// WHEN
	result, err := curve.Evaluate(40)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 50, result)
}

func TestLinearCurveClampsBelowRange(t *testing.T) {
	// GIVEN
	curve, _ := New(createLinearCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))

	// WHEN
	result, err := curve.Evaluate(20)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 20, result)
}

func TestLinearCurveClampsAboveRange(t *testing.T) {
	// GIVEN
	curve, _ := New(createLinearCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))

	// WHEN
	result, err := curve.Evaluate(60)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 80, result)
}

func TestLinearCurveExactPointMatch(t *testing.T) {
	// GIVEN
	curve, _ := New(createLinearCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 40, Duty: 50},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))

	// WHEN
	result, err := curve.Evaluate(40)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 50, result)
}

func TestSteppedCurvePlateau(t *testing.T) {
	// GIVEN
	curve, _ := New(createSteppedCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 40, Duty: 50},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))

	// WHEN
	result, err := curve.Evaluate(45)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 50, result)
}

func TestSteppedCurveSwitchesAtPoint(t *testing.T) {
	// GIVEN
	curve, _ := New(createSteppedCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 40, Duty: 50},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))

	// WHEN
	result, err := curve.Evaluate(40)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 50, result)
}

func TestSteppedCurveBelowFirstPoint(t *testing.T) {
	// GIVEN
	curve, _ := New(createSteppedCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))

	// WHEN
	result, err := curve.Evaluate(10)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 20, result)
}

func TestNewRejectsEmptyCurve(t *testing.T) {
	// GIVEN
	config := createLinearCurveConfig()

	// WHEN
	_, err := New(config)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidCurve)
}

func TestNewRejectsUnsortedCurve(t *testing.T) {
	// GIVEN
	config := createLinearCurveConfig(
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
	)

	// WHEN
	_, err := New(config)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidCurve)
}

func TestNewRejectsDuplicateTemperatures(t *testing.T) {
	// GIVEN
	config := createLinearCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 30, Duty: 50},
	)

	// WHEN
	_, err := New(config)

	// THEN
	assert.ErrorIs(t, err, ErrInvalidCurve)
}

func TestSampleCoversCurveRange(t *testing.T) {
	// GIVEN
	curve, _ := New(createLinearCurveConfig(
		configuration.CurvePointConfig{Temp: 30, Duty: 20},
		configuration.CurvePointConfig{Temp: 50, Duty: 80},
	))

	// WHEN
	values, err := curve.Sample()

	// THEN
	assert.NoError(t, err)
	assert.Len(t, values, 21)
	assert.Equal(t, 20.0, values[0])
	assert.Equal(t, 80.0, values[20])
}
