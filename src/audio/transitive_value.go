package audio

import "math"

// ----- Transitive Value ----- //

// transitiveValue approaches targetValue exponentially, reaching 63% of the
// distance after duration ms.
type transitiveValue struct {
	gliding      bool
	duration     float64 // ms
	endThreshold float64
	initialValue float64
	targetValue  float64
	value        float64
	pos          int
}

func newTransitiveValue() *transitiveValue {
	return &transitiveValue{}
}

func (tv *transitiveValue) exponential(duration float64, targetValue float64, endThreshold float64) {
	tv.gliding = true
	tv.duration = duration
	tv.endThreshold = endThreshold
	tv.pos = 0
	tv.initialValue = tv.value
	tv.targetValue = targetValue
	if duration <= 0 {
		tv.end()
	}
}

func (tv *transitiveValue) step() bool {
	if !tv.gliding {
		return false
	}
	phaseTime := float64(tv.pos) * secPerSample * 1000 // ms
	tv.value = setTargetAtTime(tv.initialValue, tv.targetValue, phaseTime/tv.duration)
	if math.Abs(tv.value-tv.targetValue) < tv.endThreshold {
		tv.end()
		return true
	}
	tv.pos++
	return false
}

func (tv *transitiveValue) end() {
	tv.gliding = false
	tv.value = tv.targetValue
	tv.pos = 0
}

func setTargetAtTime(initialValue float64, targetValue float64, pos float64) float64 {
	return targetValue + (initialValue-targetValue)*math.Exp(-pos)
}
