package domain

// Quadrant identifies an Eisenhower matrix bucket. Tasks missing either
// priority or urgency fall into QuadrantUncategorized.
type Quadrant string

const (
	Quadrant1             Quadrant = "q1" // urgent + important: do first
	Quadrant2             Quadrant = "q2" // not urgent + important: schedule
	Quadrant3             Quadrant = "q3" // urgent + not important: delegate
	Quadrant4             Quadrant = "q4" // not urgent + not important: eliminate
	QuadrantUncategorized Quadrant = "uncategorized"
)

// ValidQuadrant reports whether q names a real matrix bucket. The
// uncategorized bucket is a classification result, not a drop target.
func ValidQuadrant(q Quadrant) bool {
	switch q {
	case Quadrant1, Quadrant2, Quadrant3, Quadrant4:
		return true
	}
	return false
}

// Classify maps a task to its matrix quadrant. Only "high" counts as
// urgent or important; medium and low both collapse to the not-high bit.
// That collapse is applied consistently across the whole system and must
// not be widened into a three-way split.
func Classify(t Task) Quadrant {
	if t.Priority == "" || t.Urgency == "" {
		return QuadrantUncategorized
	}

	important := t.Priority == PriorityHigh
	urgent := t.Urgency == UrgencyHigh

	switch {
	case urgent && important:
		return Quadrant1
	case !urgent && important:
		return Quadrant2
	case urgent && !important:
		return Quadrant3
	default:
		return Quadrant4
	}
}

// QuadrantValues is the inverse mapping used when a task is dropped into
// a quadrant. It only ever produces high/low pairs, so it does not
// round-trip for medium-valued inputs; that asymmetry is intentional.
func QuadrantValues(q Quadrant) (Priority, Urgency) {
	switch q {
	case Quadrant1:
		return PriorityHigh, UrgencyHigh
	case Quadrant2:
		return PriorityHigh, UrgencyLow
	case Quadrant3:
		return PriorityLow, UrgencyHigh
	case Quadrant4:
		return PriorityLow, UrgencyLow
	default:
		return PriorityMedium, UrgencyMedium
	}
}

// MatrixSnapshot groups tasks by quadrant.
type MatrixSnapshot struct {
	Q1            []Task
	Q2            []Task
	Q3            []Task
	Q4            []Task
	Uncategorized []Task
}

// QuadrantCounts holds per-quadrant task counts.
type QuadrantCounts struct {
	Q1            int
	Q2            int
	Q3            int
	Q4            int
	Uncategorized int
}

// GroupByQuadrant classifies every task into a snapshot.
func GroupByQuadrant(tasks []Task) MatrixSnapshot {
	var snap MatrixSnapshot
	for _, t := range tasks {
		switch Classify(t) {
		case Quadrant1:
			snap.Q1 = append(snap.Q1, t)
		case Quadrant2:
			snap.Q2 = append(snap.Q2, t)
		case Quadrant3:
			snap.Q3 = append(snap.Q3, t)
		case Quadrant4:
			snap.Q4 = append(snap.Q4, t)
		default:
			snap.Uncategorized = append(snap.Uncategorized, t)
		}
	}
	return snap
}

// CountByQuadrant classifies every task and tallies the buckets.
func CountByQuadrant(tasks []Task) QuadrantCounts {
	var counts QuadrantCounts
	for _, t := range tasks {
		switch Classify(t) {
		case Quadrant1:
			counts.Q1++
		case Quadrant2:
			counts.Q2++
		case Quadrant3:
			counts.Q3++
		case Quadrant4:
			counts.Q4++
		default:
			counts.Uncategorized++
		}
	}
	return counts
}
