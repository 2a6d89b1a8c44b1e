// Package file persists pdfqa settings as TOML.
//
// The store lives at $PDFQA_CONFIG_DIR/config.toml, or ~/.pdfqa/config.toml
// when the variable is unset. Nested tables are flattened to dot keys such
// as "embedding.provider" and "retrieval.k".
package file
