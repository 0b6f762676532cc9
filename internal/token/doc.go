// Package token defines lexical token kinds and trivia for the xtread reader.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Whitespace and comments are trivia: the lexer attaches them to the
//     following significant token as Leading and never returns them from Next.
//   - The '"' delimiter is part of the String token; it is never a token of its own.
//   - XtlangType, TypedName, TypeAnnotation and GenericIdentifier are produced
//     only by an external token provider, never by the default classifier.
package token
