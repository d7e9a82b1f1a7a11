package interp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/martian56/raven/internal/parser"
	"github.com/martian56/raven/internal/semantic"
)

// TestFixtures runs every .rv program under testdata/fixtures and
// snapshots its stdout, mirroring the teacher's snapshot-per-fixture
// harness so a change to evaluator output shows up as a reviewable diff
// rather than a silently drifting behavior.
func TestFixtures(t *testing.T) {
	dir := "../../testdata/fixtures"
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading fixtures dir: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".rv" {
			continue
		}
		name := entry.Name()
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading fixture: %v", err)
			}
			source := string(data)

			p := parser.New(source, path)
			program := p.ParseProgram()
			if p.Err() != nil {
				t.Fatalf("parse error: %v", p.Err())
			}

			an := semantic.NewAnalyzer(source, path)
			if errs := an.Analyze(program); len(errs) > 0 {
				t.Fatalf("type errors: %v", errs[0])
			}

			var buf bytes.Buffer
			interpreter := New(source, path, WithStdout(&buf), WithBuiltins(testBuiltins()))
			if err := interpreter.Run(program); err != nil {
				t.Fatalf("runtime error: %v", err)
			}

			snaps.MatchSnapshot(t, buf.String())
		})
	}
}
