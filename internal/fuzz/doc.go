// Package fuzztests holds Go fuzz harnesses for the reader
// (source -> lexer -> parser -> cst.Verify). They look for panics, hangs and
// broken span invariants on arbitrary bytes.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
