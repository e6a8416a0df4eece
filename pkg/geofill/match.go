package geofill

// MatchWindow is the largest time difference, in minutes, across which a
// location is propagated. Roughly the time it takes to change location.
const MatchWindow = 60

// Match finds the tagged photo closest in time to u within MatchWindow.
// Ties go to the earliest corrected time, then to the smallest path.
func Match(u UntaggedPhoto, tagged []TaggedPhoto) (MatchResult, bool) {
	var best *TaggedPhoto
	var bestDiff int64

	for i := range tagged {
		t := &tagged[i]
		diff := minutesBetween(t.Corrected, u.Captured)
		if diff < 0 {
			diff = -diff
		}
		if diff > MatchWindow {
			continue
		}
		if best == nil || diff < bestDiff || (diff == bestDiff && earlier(t, best)) {
			best = t
			bestDiff = diff
		}
	}

	if best == nil {
		return MatchResult{}, false
	}

	return MatchResult{
		Photo:    u,
		Location: best.Location,
		Source:   best.Path,
		Minutes:  bestDiff,
	}, true
}

func earlier(a *TaggedPhoto, b *TaggedPhoto) bool {
	if !a.Corrected.Equal(b.Corrected) {
		return a.Corrected.Before(b.Corrected)
	}
	return a.Path < b.Path
}
