package domain

import (
	"fmt"
	"strings"
	"time"
)

// sourceDateLayout is the date format used on the published exclusion table.
const sourceDateLayout = "02.01.2006"

// isoDateLayout is the normalised form used inside record identities and
// in snapshot/report filenames.
const isoDateLayout = "2006-01-02"

// Record represents one exclusion-list entry.
// EffectiveDate keeps the source's own formatting; only the identity
// derivation normalises it to ISO form.
type Record struct {
	// ID is the content-derived identity, stable across runs for the
	// same logical entry. See DeriveID.
	ID string `json:"id"`

	// Subject is the excluded entity's name, trimmed.
	Subject string `json:"subject"`

	// Decision is the classification or action text, trimmed.
	Decision string `json:"decision"`

	// EffectiveDate is the publication date as printed by the source
	// (DD.MM.YYYY), trimmed.
	EffectiveDate string `json:"effective_date"`
}

// RawRow holds the text fields extracted from one source table row,
// before validation and identity assignment.
type RawRow struct {
	Subject       string
	Decision      string
	EffectiveDate string
}

// NewRecord validates a raw row and assigns its identity.
// All three fields must be non-empty after trimming and the date must
// match the source format; otherwise an error is returned and the
// caller is expected to skip the row.
func NewRecord(subject, decision, effectiveDate string) (Record, error) {
	subject = strings.TrimSpace(subject)
	decision = strings.TrimSpace(decision)
	effectiveDate = strings.TrimSpace(effectiveDate)

	if subject == "" || decision == "" || effectiveDate == "" {
		return Record{}, fmt.Errorf("%w: subject=%q decision=%q effective_date=%q",
			ErrMissingField, subject, decision, effectiveDate)
	}

	id, err := DeriveID(subject, decision, effectiveDate)
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:            id,
		Subject:       subject,
		Decision:      decision,
		EffectiveDate: effectiveDate,
	}, nil
}

// DeriveID computes the deterministic identity for a record's defining
// fields: lower-cased subject with spaces hyphenated, lower-cased
// decision, and the effective date normalised to YYYY-MM-DD, joined by
// hyphens. Any change to decision or date therefore yields a new
// identity; a corrected entry shows up in a diff as a deletion plus an
// addition.
func DeriveID(subject, decision, effectiveDate string) (string, error) {
	iso, err := normaliseDate(strings.TrimSpace(effectiveDate))
	if err != nil {
		return "", err
	}

	subjectPart := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(subject)), " ", "-")
	decisionPart := strings.ToLower(strings.TrimSpace(decision))

	return subjectPart + "-" + decisionPart + "-" + iso, nil
}

// normaliseDate parses a source-format date (DD.MM.YYYY) into ISO form.
func normaliseDate(raw string) (string, error) {
	t, err := time.Parse(sourceDateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedDate, raw)
	}
	return t.Format(isoDateLayout), nil
}
