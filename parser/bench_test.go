package parser_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/luthersystems/beatlisp/parser"
)

const fixtureDir = "testfixtures"

func fixtures(tb testing.TB) []string {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.lisp"))
	if err != nil {
		tb.Fatalf("Failed to list test fixtures: %v", err)
	}
	sort.Strings(files) // should be redundant
	return files
}

func BenchmarkParser(b *testing.B) {
	for _, path := range fixtures(b) {
		src, err := os.ReadFile(path)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(filepath.Base(path), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			for i := 0; i < b.N; i++ {
				_, err := parser.Parse(path, string(src))
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
