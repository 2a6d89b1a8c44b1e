// Package normalisers provides implementations of the Normaliser interface.
// Each normaliser extracts text content from a specific MIME type; the
// Registry picks the highest-priority normaliser for an uploaded file.
package normalisers
