package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

// inlineSeeds покрывают углы грамматики, которых нет в testdata.
var inlineSeeds = []string{
	"",
	"()",
	"(a . b)",
	"(. a)",
	"(a .(b))",
	"#(1 . 2)",
	"'(a b . c)",
	"`(a ,b ,@c)",
	", @x",
	"#| a #| b |# c |#",
	"#| a |# b |#",
	"#\\space #\\x41 #\\( #\\",
	`"ab\x41cd" "\q"`,
	"#x1A:i32 #b101 1/0 -.5 +.e1",
	"x:i64 v:|4,double|* f:[i64,i64]* List{!a}*",
	"<i32,i64>* [!a,!a]* |4,i8|",
	"#!/bin/sh\n(a)",
	"(((((((((())))))))))",
	"#q",
	")",
	"\x00(\xff)",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".xtm", ".scm":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	return clampSeed(input)
}
