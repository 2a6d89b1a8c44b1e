// Package services implements the driving port interfaces.
// Services contain the core logic of pdfqa: accepting uploads, turning
// them into text, building similarity indexes and answering queries.
// They orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO or external dependencies.
package services
