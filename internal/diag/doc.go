// Package diag defines the diagnostic model shared by the reader, the driver
// and the CLI.
//
// # Purpose
//
//   - Provide deterministic, serialisable records for findings produced while
//     loading, tokenizing and parsing Extempore sources.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//   - Carry the reader's single located failure as *Error.
//
// # Scope
//
// Package diag does not perform IO or colouring. Rendering lives in
// internal/diagfmt; orchestration lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1002, SYN2006, INT9001 ...).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional text edits.
//
// # Reader errors
//
// The reader never recovers: it returns either a complete tree or exactly one
// *Error. Codes in the INT range (IntInvariantViolation, IntProviderContract)
// mean the reader or a token provider is broken; tooling should ask for a bug
// report instead of telling the user to fix the source. Error.Diagnostic
// converts the failure into a Diagnostic for the common rendering path.
//
// # Emitting diagnostics
//
// Phases use a diag.Reporter to decouple emission from storage. ReportBuilder
// (ReportWarning) chains WithNote before Emit.
// BagReporter aggregates diagnostics into a Bag, which supports sorting,
// deduplication and merging; DedupReporter filters repeats on the way in.
package diag
