// Package htmltable implements the SourceProvider port against a public
// HTML page carrying the exclusion table. It fetches the page over HTTP
// and extracts the subject, decision and effective-date cells from each
// table body row.
package htmltable
