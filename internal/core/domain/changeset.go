package domain

// ChangeSet holds the records that differ between two Generations.
// Added records exist only in the current Generation, Deleted records
// only in the previous one. A run with no differences produces no
// ChangeSet at all (Diff returns nil), which callers can distinguish
// from an empty one.
type ChangeSet struct {
	Added   Generation
	Deleted Generation
}

// Diff computes the set difference between the current and previous
// Generations by identity. Each output preserves the insertion order of
// the Generation it came from, so Diff(A, B).Added equals
// Diff(B, A).Deleted element for element. Returns nil when the two
// Generations contain the same identities.
func Diff(current, previous Generation) *ChangeSet {
	currentIdx := current.index()
	previousIdx := previous.index()

	cs := &ChangeSet{}

	for _, r := range current {
		if _, ok := previousIdx[r.ID]; !ok {
			cs.Added = append(cs.Added, r)
		}
	}

	for _, r := range previous {
		if _, ok := currentIdx[r.ID]; !ok {
			cs.Deleted = append(cs.Deleted, r)
		}
	}

	if len(cs.Added) == 0 && len(cs.Deleted) == 0 {
		return nil
	}
	return cs
}
