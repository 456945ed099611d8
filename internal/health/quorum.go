package health

// Quorum evaluates C6: the primary always counts as healthy, so
// quorum holds iff 1 + |{Healthy secondaries}| >= floor((1+n)/2) + 1,
// where n is the total number of configured secondaries.
func Quorum(descriptors []*Descriptor) bool {
	healthyCount := 1
	for _, d := range descriptors {
		if d.State() == Healthy {
			healthyCount++
		}
	}
	majority := (1+len(descriptors))/2 + 1
	return healthyCount >= majority
}
