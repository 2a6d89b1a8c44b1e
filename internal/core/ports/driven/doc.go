// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Turns text into vectors (the injected model)
//   - VectorIndex: In-memory nearest-neighbour search over vectors
//   - Normaliser: Extracts text from an uploaded file
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - PostProcessorPipeline: Caller-side chunking. Without it, one text per document.
//   - Notifier: Renders the upload acknowledgement. Without it, only the returned Upload carries it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
