package configuration

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// SpinDownValue is the duty applied while all devices are spun down.
// It is either a duty percentage ("0".."100") or the power-off sentinel.
type SpinDownValue string

// SpinDownPowerOff tells the remote device to cut fan power entirely
// instead of driving a fixed duty.
const SpinDownPowerOff SpinDownValue = "off"

func (v SpinDownValue) IsPowerOff() bool {
	return v == SpinDownPowerOff
}

// Duty returns the fixed duty percentage this value encodes.
// Calling Duty on the power-off sentinel is an error.
func (v SpinDownValue) Duty() (int, error) {
	if v.IsPowerOff() {
		return 0, fmt.Errorf("spin-down value %q is the power-off sentinel", v)
	}
	duty, err := strconv.Atoi(string(v))
	if err != nil {
		return 0, fmt.Errorf("cannot parse spin-down value %q: %w", v, err)
	}
	return duty, nil
}

// spinDownValueHookFunc returns a mapstructure decode hook that allows
// numeric YAML values (e.g. value: 25) to decode as SpinDownValue.
func spinDownValueHookFunc() mapstructure.DecodeHookFuncType {
	spinDownValueType := reflect.TypeOf(SpinDownValue(""))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != spinDownValueType {
			return data, nil
		}

		switch v := data.(type) {
		case int:
			return SpinDownValue(strconv.Itoa(v)), nil
		case float64:
			return SpinDownValue(strconv.Itoa(int(v))), nil
		case bool:
			// yaml reads an unquoted "off" as boolean false
			if !v {
				return SpinDownPowerOff, nil
			}
			return data, nil
		case string:
			return SpinDownValue(v), nil
		}
		return data, nil
	}
}
