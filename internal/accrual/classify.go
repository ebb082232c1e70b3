package accrual

// Classifier maps a GPS accuracy reading and a connectivity flag to an
// outdoor/indoor verdict. The heuristic: a phone with a tight GPS fix and no
// wifi association is outdoors.
type Classifier struct {
	// AccuracyThreshold is the largest accuracy radius, in meters, still
	// considered a clear-sky fix. Deployments have run it between 10 and 20.
	AccuracyThreshold float64
}

// Outside returns the verdict for one reading. Input validation is the
// caller's job; any finite accuracy value classifies.
func (c Classifier) Outside(accuracyMeters float64, connectedToWifi bool) bool {
	return accuracyMeters <= c.AccuracyThreshold && !connectedToWifi
}
