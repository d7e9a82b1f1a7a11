// Package module implements Raven's file-backed import resolution
// (spec.md §4.6, §6.4): searching for a named module, parsing and
// type-checking it, running it once in its own Interpreter, and handing
// back its exported bindings. It implements interp.Importer so
// internal/interp never needs to import this package.
package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/martian56/raven/internal/ast"
	"github.com/martian56/raven/internal/builtins"
	"github.com/martian56/raven/internal/interp"
	"github.com/martian56/raven/internal/parser"
	"github.com/martian56/raven/internal/semantic"
)

// Resolver resolves `import` statements by probing a search path for
// "<name>.rv", running the file, and caching the result so a module is
// only ever loaded once per process (spec.md §4.6).
type Resolver struct {
	// LibraryPaths are searched, in order, after the importing file's own
	// directory — as the CLI builds them, RAVEN_PATH entries followed by
	// any raven.yaml module_paths. No bundled library directory is added.
	LibraryPaths []string

	cache   map[string]map[string]interp.Value
	loading map[string]bool // cycle detection, keyed by canonical path
}

// NewResolver builds a Resolver with the given search path, appended
// after each importing file's own directory at resolution time.
func NewResolver(libraryPaths []string) *Resolver {
	return &Resolver{
		LibraryPaths: libraryPaths,
		cache:        make(map[string]map[string]interp.Value),
		loading:      make(map[string]bool),
	}
}

// Resolve implements interp.Importer. fromFile is the absolute or
// relative path of the file containing the import; modulePath is the
// bare name or quoted path written after `import`/`from`.
func (r *Resolver) Resolve(fromFile, modulePath string) (map[string]interp.Value, error) {
	path, err := r.find(fromFile, modulePath)
	if err != nil {
		return nil, err
	}
	canonical, err := filepath.Abs(path)
	if err != nil {
		canonical = path
	}

	if exports, ok := r.cache[canonical]; ok {
		return exports, nil
	}
	if r.loading[canonical] {
		return nil, fmt.Errorf("cyclic import of '%s'", canonical)
	}
	r.loading[canonical] = true
	defer delete(r.loading, canonical)

	exports, err := r.load(canonical)
	if err != nil {
		return nil, err
	}
	r.cache[canonical] = exports
	return exports, nil
}

// find probes fromFile's directory, then each configured library path,
// for a file literally named modulePath (when it already ends in
// ".rv") or "<modulePath>.rv".
func (r *Resolver) find(fromFile, modulePath string) (string, error) {
	name := modulePath
	if !strings.HasSuffix(name, ".rv") {
		name += ".rv"
	}

	dirs := make([]string, 0, 1+len(r.LibraryPaths))
	if fromFile != "" {
		dirs = append(dirs, filepath.Dir(fromFile))
	} else {
		dirs = append(dirs, ".")
	}
	dirs = append(dirs, r.LibraryPaths...)

	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("module '%s' not found (searched %s)", modulePath, strings.Join(dirs, ", "))
}

// load parses, type-checks, and evaluates the module at path, then
// extracts its export-flagged top-level bindings.
func (r *Resolver) load(path string) (map[string]interp.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading module '%s': %v", path, err)
	}
	source := string(data)

	p := parser.New(source, path)
	program := p.ParseProgram()
	if p.Err() != nil {
		return nil, fmt.Errorf("parsing module '%s': %v", path, p.Err())
	}

	an := semantic.NewAnalyzer(source, path)
	if errs := an.Analyze(program); len(errs) > 0 {
		return nil, fmt.Errorf("module '%s' failed type checking: %v", path, errs[0])
	}

	sub := interp.New(source, path, interp.WithImporter(r), interp.WithBuiltins(builtins.All()))
	if err := sub.Run(program); err != nil {
		return nil, fmt.Errorf("running module '%s': %v", path, err)
	}

	exports := make(map[string]interp.Value)
	for _, stmt := range program.Statements {
		switch d := stmt.(type) {
		case *ast.FuncDecl:
			if d.IsExported {
				exports[d.Name] = &interp.FunctionValue{Decl: d, Owner: sub}
			}
		case *ast.VarDecl:
			if d.IsExported {
				if v, ok := sub.Globals().Get(d.Name); ok {
					exports[d.Name] = v
				}
			}
		case *ast.StructDecl:
			if d.IsExported {
				exports[d.Name] = &interp.StructTypeValue{Decl: d}
			}
		case *ast.EnumDecl:
			if d.IsExported {
				exports[d.Name] = &interp.EnumTypeValue{Decl: d}
			}
		}
	}
	return exports, nil
}

// LibraryPathsFromEnv splits RAVEN_PATH on the platform list separator
// (":" on Unix-like systems, ";" on Windows), ignoring empty entries.
func LibraryPathsFromEnv(envVal string) []string {
	if envVal == "" {
		return nil
	}
	sep := string(os.PathListSeparator)
	parts := strings.Split(envVal, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
