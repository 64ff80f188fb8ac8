// Package host defines the boundary between the checker and whatever
// supplies source text, bindings and module structure (component the
// spec calls the "host" in §6): a real IDE/build integration, or in
// this repository's own demo binaries, a Fixture built in memory.
//
// Grounded on escalier's checker/scope.go and checker/package_registry.go,
// which play the analogous role of handing the checker pre-resolved
// bindings and module info rather than re-deriving them from text.
package host

import (
	"github.com/moznion/go-optional"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/types"
)

// LanguageVersion gates which stdlib members and syntax forms a checker
// run may assume are present, mirroring
// original_source/pyrefly's pyre2/lib/config.rs::PythonVersion.
type LanguageVersion struct {
	Major, Minor, Patch int
}

func (v LanguageVersion) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// ModuleInfo is what a host knows about one importable unit before the
// checker runs over its body.
type ModuleInfo struct {
	Name    string
	Path    string
	Version LanguageVersion
}

// Host is everything the checker needs from outside itself: name/binding
// resolution, class metadata lookup, module information, the standard
// library's class table, and a sink for finished diagnostics.
type Host interface {
	// ResolveName maps a NameExpr/NameTypeAnn's BindingID to the symbol
	// it refers to (a local variable, a class, a function, an imported
	// name) so the checker never re-derives scoping rules itself.
	ResolveName(bindingID int) (Symbol, bool)

	// ResolveBinding maps a *ast.ClassDef/*ast.FuncDef back to the
	// types.Class/types.FunctionType the host has already synthesized
	// for it, so re-checking a module doesn't re-synthesize classes
	// that haven't changed.
	ResolveBinding(decl ast.Node) (Symbol, bool)

	// ClassInfo returns the resolved types.Class for a qualified class
	// name, used for base-class and annotation resolution.
	ClassInfo(qualName string) (*types.Class, bool)

	// ModuleInfo returns metadata about the module currently being
	// checked.
	ModuleInfo() ModuleInfo

	// Stdlib returns the handle table for builtin classes (§3).
	Stdlib() *types.Stdlib

	// Emit delivers one finished diagnostic to the host. The checker
	// reports through internal/diag.Collector and does not call Emit.
	Emit(d Diagnostic)
}

// SymbolKind tags what ResolveName/ResolveBinding found.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolClass
	SymbolFunction
	SymbolModule
	SymbolTypeParam
)

// Symbol is a resolved name: either its declared/inferred Type, or for
// SymbolClass a Class handle (ClassInfo callers use the latter; ordinary
// expression resolution uses Type). Class is absent for every kind but
// SymbolClass, modeled as an Option rather than a nilable pointer so a
// caller can't mistake "not a class" for "class not yet resolved".
type Symbol struct {
	Kind  SymbolKind
	Type  types.Type
	Class optional.Option[*types.Class]
}

// Diagnostic is the host-facing shape of a finished checker diagnostic.
// internal/diag.Collector keeps its own richer Error values and does not
// convert them into Diagnostics.
type Diagnostic struct {
	Span    ast.Span
	Kind    string
	Message string
}
