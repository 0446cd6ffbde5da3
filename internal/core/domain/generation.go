package domain

// Generation is the ordered record set produced by one run after
// deduplication. No two records in a Generation share an ID.
type Generation []Record

// Deduplicate collapses a record list to the first occurrence per
// identity, preserving first-seen order. Later duplicates are dropped
// silently; the source table occasionally repeats rows and that is not
// an error. The operation is idempotent.
func Deduplicate(records []Record) Generation {
	seen := make(map[string]struct{}, len(records))
	out := make(Generation, 0, len(records))

	for _, r := range records {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	return out
}

// index builds an identity-keyed lookup for diffing.
func (g Generation) index() map[string]struct{} {
	idx := make(map[string]struct{}, len(g))
	for _, r := range g {
		idx[r.ID] = struct{}{}
	}
	return idx
}
