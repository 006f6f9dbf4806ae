package search

const (
	MinStrength = 1
	MaxStrength = 10

	// MaxDepth bounds the tree size at the top strength settings.
	MaxDepth = 5

	// RandomMoveStrength is the highest strength that sometimes plays a random legal move.
	RandomMoveStrength = 2

	noisePerLevel = 50
)

// ClampStrength forces a strength into the supported range.
func ClampStrength(strength int) int {
	if strength < MinStrength {
		return MinStrength
	}
	if strength > MaxStrength {
		return MaxStrength
	}
	return strength
}

// Depth returns the search depth in plies for a strength. It never decreases as strength grows.
func Depth(strength int) int {
	strength = ClampStrength(strength)
	d := (strength + 1) / 2
	if d > MaxDepth {
		d = MaxDepth
	}
	return d
}

// Noise returns the width of the uniform score perturbation for a strength. It shrinks to zero
// at the top setting.
func Noise(strength int) int {
	return (MaxStrength - ClampStrength(strength)) * noisePerLevel
}
