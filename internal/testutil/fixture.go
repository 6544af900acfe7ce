package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ReadFixture returns the contents of testdata/name relative to the
// calling test's package directory.
func ReadFixture(t testing.TB, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading fixture %s: %v", name, err)
	}
	return data
}

// Module wraps body lines in a module declaration with the given header,
// e.g. Module("top(a, y)", "input a;", "output y;", "assign y = ~a;").
func Module(header string, body ...string) []byte {
	var b strings.Builder
	b.WriteString("module ")
	b.WriteString(header)
	b.WriteString(";\n")
	for _, line := range body {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("endmodule\n")
	return []byte(b.String())
}
