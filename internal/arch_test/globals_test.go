package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// allowedGlobals lists package-level var names that are intentionally global
// but don't match the automated detection heuristics. Each entry documents why
// it is acceptable.
var allowedGlobals = map[string][]string{
	// interp: the built-in dictionary is embedded at build time and only
	// read afterwards.
	"interp": {"defaultTOML"},
}

// allowedGlobalPrefixes treats every var with one of the prefixes as
// constant-like within the named package.
var allowedGlobalPrefixes = map[string][]string{
	// tui: lipgloss styles and palette colors are set once at init.
	"tui": {"style", "color"},
}

// packageVars parses files and returns every package-level var spec.
func packageVars(t *testing.T, fset *token.FileSet, files []string) map[string][]*ast.ValueSpec {
	t.Helper()

	out := make(map[string][]*ast.ValueSpec)
	for _, filePath := range files {
		node, err := parser.ParseFile(fset, filePath, nil, 0)
		if err != nil {
			t.Fatalf("parsing %s: %v", filePath, err)
		}
		out[filePath] = varSpecs(node)
	}
	return out
}

func varSpecs(node *ast.File) []*ast.ValueSpec {
	var specs []*ast.ValueSpec
	for _, decl := range node.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			if vs, ok := spec.(*ast.ValueSpec); ok {
				specs = append(specs, vs)
			}
		}
	}
	return specs
}

// constantLike reports whether the i-th name of vs is safe as a package
// global: an error sentinel, a compiled regexp, a sync or atomic value, or a
// literal table.
func constantLike(vs *ast.ValueSpec, i int) bool {
	var val ast.Expr
	if i < len(vs.Values) {
		val = vs.Values[i]
	}
	return isErrorSentinel(vs.Type, val) ||
		isRegexpCompile(val) ||
		isSyncOrAtomicType(vs.Type) ||
		isSimpleLiteral(val) ||
		isCompositeLiteral(val)
}

// TestNoMutableGlobalState flags package-level vars in internal packages that
// are neither constant-like nor allowlisted. Chart state belongs in a Store.
func TestNoMutableGlobalState(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			allowed := makeAllowSet(pkg)
			prefixes := allowedGlobalPrefixes[pkg]
			fset := token.NewFileSet()
			for filePath, specs := range packageVars(t, fset, goFilesIn(t, filepath.Join(dir, pkg))) {
				for _, vs := range specs {
					for i, name := range vs.Names {
						n := name.Name
						if n == "_" || allowed[n] || hasAllowedPrefix(n, prefixes) || constantLike(vs, i) {
							continue
						}
						t.Errorf("mutable global state in %s: var %s (type: %s); pass it in or build it in a function",
							filepath.Base(filePath), n, typeString(vs.Type))
					}
				}
			}
		})
	}
}

// makeAllowSet builds a set of allowed var names for a package.
func makeAllowSet(pkg string) map[string]bool {
	names := allowedGlobals[pkg]
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// hasAllowedPrefix returns true if varName starts with any of the given prefixes.
func hasAllowedPrefix(varName string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(varName, p) {
			return true
		}
	}
	return false
}

// isErrorSentinel returns true if the var declaration looks like an error
// sentinel: either the type annotation is `error`, or the initializer calls
// `errors.New(...)` or `fmt.Errorf(...)`.
func isErrorSentinel(typeExpr ast.Expr, val ast.Expr) bool {
	// Check type annotation.
	if ident, ok := typeExpr.(*ast.Ident); ok && ident.Name == "error" {
		return true
	}

	if val == nil {
		return false
	}

	call, ok := val.(*ast.CallExpr)
	if !ok {
		return false
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}

	pkgIdent, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}

	return (pkgIdent.Name == "errors" && sel.Sel.Name == "New") ||
		(pkgIdent.Name == "fmt" && sel.Sel.Name == "Errorf")
}

// isRegexpCompile returns true if the initializer is regexp.MustCompile(...).
func isRegexpCompile(val ast.Expr) bool {
	if val == nil {
		return false
	}
	call, ok := val.(*ast.CallExpr)
	if !ok {
		return false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkgIdent, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return pkgIdent.Name == "regexp" && sel.Sel.Name == "MustCompile"
}

// isSyncOrAtomicType reports whether the declared type lives in sync or
// sync/atomic.
func isSyncOrAtomicType(typeExpr ast.Expr) bool {
	if typeExpr == nil {
		return false
	}
	sel, ok := typeExpr.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	pkgIdent, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	return pkgIdent.Name == "sync" || pkgIdent.Name == "atomic"
}

// isSimpleLiteral returns true if the initializer is a basic literal
// (string, int, float, char, imaginary).
func isSimpleLiteral(val ast.Expr) bool {
	if val == nil {
		return false
	}
	_, ok := val.(*ast.BasicLit)
	return ok
}

// isCompositeLiteral reports whether the initializer is an inline table.
func isCompositeLiteral(val ast.Expr) bool {
	if val == nil {
		return false
	}
	_, ok := val.(*ast.CompositeLit)
	return ok
}

// typeString returns a human-readable string for a type expression.
// Returns "<inferred>" when the type is implicit.
func typeString(expr ast.Expr) string {
	if expr == nil {
		return "<inferred>"
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return x.Name + "." + t.Sel.Name
		}
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		if t.Len != nil {
			return "[...]" + typeString(t.Elt)
		}
		return "[]" + typeString(t.Elt)
	case *ast.MapType:
		return "map[" + typeString(t.Key) + "]" + typeString(t.Value)
	case *ast.InterfaceType:
		return "interface{}"
	}
	return "<complex>"
}

// TestAllowedGlobalsAreUsed catches allowlist entries whose var was removed
// or renamed.
func TestAllowedGlobalsAreUsed(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for pkg, names := range allowedGlobals {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			files := goFilesIn(t, filepath.Join(dir, pkg))
			if len(files) == 0 {
				t.Fatalf("no .go files found for allowlisted package %q", pkg)
			}
			declared := make(map[string]bool)
			for _, specs := range packageVars(t, token.NewFileSet(), files) {
				for _, vs := range specs {
					for _, n := range vs.Names {
						declared[n.Name] = true
					}
				}
			}
			for _, name := range names {
				if !declared[name] {
					t.Errorf("allowedGlobals[%q] lists %q but no such var exists", pkg, name)
				}
			}
		})
	}
}

func TestConstantLike(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"sentinel", `package p; import "errors"; var ErrNoChart = errors.New("no chart loaded")`, true},
		{"wrapped sentinel", `package p; import "fmt"; var ErrRange = fmt.Errorf("degree out of range: %w", nil)`, true},
		{"typed error", `package p; var errStale error`, true},
		{"regexp", `package p; import "regexp"; var degreeRe = regexp.MustCompile("^[0-9]+")`, true},
		{"atomic counter", `package p; import "sync/atomic"; var generation atomic.Uint64`, true},
		{"literal", `package p; var defaultPreset = "desktop"`, true},
		{"sign table", `package p; var signNames = [12]string{"Aries", "Taurus"}`, true},
		{"orb map", `package p; var orbs = map[string]float64{"Trine": 8}`, true},
		{"snapshot cache", `package p; var cache = make(map[string]int)`, false},
		{"glyph buffer", `package p; var buf = make([]byte, 1024)`, false},
		{"reload channel", `package p; var reloads = make(chan struct{})`, false},
		{"constructed store", `package p; var store = newStore()`, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			node, err := parser.ParseFile(token.NewFileSet(), "p.go", tc.src, 0)
			if err != nil {
				t.Fatalf("parsing: %v", err)
			}
			specs := varSpecs(node)
			if len(specs) != 1 || len(specs[0].Names) != 1 {
				t.Fatalf("want one var in %q", tc.src)
			}
			if got := constantLike(specs[0], 0); got != tc.want {
				t.Errorf("constantLike(%s) = %v, want %v", specs[0].Names[0].Name, got, tc.want)
			}
		})
	}
}
