package phase

// #region messages

const (
	deadZoneMessage = "Low confinement. Energy escapes freely. " +
		"No sustained structure or gain is possible."
	dangerZoneMessage = "High confinement with insufficient entropy export. " +
		"Stress accumulation likely. Breakout or disruption imminent."
	safeZoneMessage = "High confinement with controlled entropy flow. " +
		"System remains stable without stress accumulation."
)

// #endregion messages

// #region classify

// Classify labels a single (Z, Sigma) point against the named zones.
// The rules run in fixed precedence: the dead-zone check wins over the
// danger-zone check, so low-Z points are dead regardless of Sigma. Total
// over [0,1]^2, pure, no error paths.
func Classify(z, sigma float64, config Config) Classification {
	switch {
	case z < config.DeadZoneZMax:
		return Classification{Label: LabelDeadZone, Message: deadZoneMessage}
	case z > config.DangerZoneZMin && sigma < config.DangerZoneSigmaMax:
		return Classification{Label: LabelDangerZone, Message: dangerZoneMessage}
	default:
		return Classification{Label: LabelSafeZone, Message: safeZoneMessage}
	}
}

// #endregion classify
