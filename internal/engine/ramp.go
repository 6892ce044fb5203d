package engine

// Ramp moves the current duty toward the target by at most step percent
// points, snapping to the target once it is within reach. A step below 1
// degenerates to an immediate jump.
func Ramp(current int, target int, step int) int {
	if step < 1 {
		return target
	}

	diff := target - current
	if diff > step {
		return current + step
	}
	if diff < -step {
		return current - step
	}
	return target
}
