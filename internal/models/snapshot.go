package models

// CountSnapshot maps a source identifier to its last-observed count. Absence
// of an entry means the source has never been observed, which is distinct
// from a present zero.
type CountSnapshot map[string]int

// TitleSnapshot maps a source identifier to the ordered top-ranked titles at
// last observation. Order is significant.
type TitleSnapshot map[string][]string

// Clone returns an independent copy of the snapshot.
func (cs CountSnapshot) Clone() CountSnapshot {
	out := make(CountSnapshot, len(cs))
	for id, count := range cs {
		out[id] = count
	}
	return out
}

// Clone returns an independent copy of the snapshot, including the title slices.
func (ts TitleSnapshot) Clone() TitleSnapshot {
	out := make(TitleSnapshot, len(ts))
	for id, titles := range ts {
		copied := make([]string, len(titles))
		copy(copied, titles)
		out[id] = copied
	}
	return out
}
