package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrProbeTimeout indicates the live probe did not finish within the
	// configured timeout.
	ErrProbeTimeout = errors.New("probe timed out")
	// ErrProbeFailed indicates the live probe ran but produced no usable
	// result.
	ErrProbeFailed = errors.New("probe failed")
)

// ProbeResult is the outcome of a successful live probe.
// Temperature is nil when the device answered but reported no
// temperature attribute.
type ProbeResult struct {
	Temperature *float64
	PowerState  PowerState
}

// Prober probes a single device for its current temperature and power
// state. Implementations must respect context cancellation.
type Prober interface {
	Probe(ctx context.Context, device string) (ProbeResult, error)
}

// smartctl exits with bit 1 set when -n standby skips a sleeping drive,
// but the same bit also covers plain device-open failures (e.g. missing
// permissions), so the exit code alone does not prove standby.
const smartctlExitStandby = 2

// SmartctlProber reads SMART data via the smartctl binary, using
// "-n standby" so that sleeping drives are never spun up by a probe.
type SmartctlProber struct {
	Binary  string
	Timeout time.Duration
}

func NewSmartctlProber(binary string, timeout time.Duration) *SmartctlProber {
	return &SmartctlProber{
		Binary:  binary,
		Timeout: timeout,
	}
}

func (p *SmartctlProber) Probe(ctx context.Context, device string) (ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.Binary, "-n", "standby", "-A", "/dev/"+device)
	output, err := cmd.Output()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ProbeResult{}, fmt.Errorf("%w: %s after %s", ErrProbeTimeout, device, p.Timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == smartctlExitStandby &&
			indicatesLowPower(output, exitErr.Stderr) {
			// drive is asleep, which is a valid probe result
			return ProbeResult{PowerState: PowerStateStandby}, nil
		}
		return ProbeResult{}, fmt.Errorf("%w: %s: %v", ErrProbeFailed, device, err)
	}

	temperature := parseSmartctlTemperature(string(output))
	return ProbeResult{
		Temperature: temperature,
		PowerState:  PowerStateActive,
	}, nil
}

// indicatesLowPower reports whether smartctl's output actually names a
// low-power state. An open failure with the same exit code must degrade
// to the cached snapshot instead of masquerading as a sleeping drive.
func indicatesLowPower(output []byte, stderr []byte) bool {
	combined := strings.ToUpper(string(output) + string(stderr))
	return strings.Contains(combined, "STANDBY") || strings.Contains(combined, "SLEEP")
}

// parseSmartctlTemperature extracts the temperature from a smartctl -A
// attribute table. Attribute 194 (Temperature_Celsius) is preferred,
// attribute 190 (Airflow_Temperature_Cel) is the fallback.
func parseSmartctlTemperature(output string) *float64 {
	var airflow *float64

	for _, line := range strings.Split(output, "\n") {
		isTemp := strings.Contains(line, "Temperature_Celsius")
		isAirflow := strings.Contains(line, "Airflow_Temperature_Cel")
		if !isTemp && !isAirflow {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 10 {
			continue
		}
		// field 10 is the raw value; some drives append extra tokens like
		// "(Min/Max 20/45)", so only the first raw token is parsed
		value, err := strconv.ParseFloat(fields[9], 64)
		if err != nil {
			continue
		}

		if isTemp {
			return &value
		}
		airflow = &value
	}

	return airflow
}
