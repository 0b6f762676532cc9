// Package trace records what the reader does over time.
//
// Spans mark the boundaries of driver runs, passes (load, lex, parse, verify)
// and per-file work. Events go to a stream (text or NDJSON), to an
// in-memory ring kept for crash dumps, or to both.
//
// # Usage
//
//	xtread check --trace=- --trace-level=phase ./src
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including per-datum events
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
