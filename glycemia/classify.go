package glycemia

// All thresholds are expressed in g/L. The bands are the standard targets for
// gestational diabetes: fasting below 0.95 g/L, post-meal below 1.20 g/L.
// Keep the tables as named constants so a clinician can adjust them without
// touching the classification logic.
const (
	HypoThreshold float64 = 0.60

	FastingNormalMax  float64 = 0.95
	FastingWarningMax float64 = 1.05

	MealNormalMax  float64 = 1.20
	MealWarningMax float64 = 1.40
)

// Classify maps a reading value and its meal context to a clinical status.
// It is total over positive values: every value lands in exactly one band.
// Values <= 0 must be rejected by the caller before classification.
func Classify(value float64, context MealContext) Status {
	if value < HypoThreshold {
		return StatusHypo
	}

	normalMax, warningMax := MealNormalMax, MealWarningMax
	if context == ContextFasting {
		normalMax, warningMax = FastingNormalMax, FastingWarningMax
	}

	switch {
	case value <= normalMax:
		return StatusNormal
	case value <= warningMax:
		return StatusWarning
	default:
		return StatusHigh
	}
}
