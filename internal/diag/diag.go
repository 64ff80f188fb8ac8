// Package diag implements the diagnostic surface (component H):
// a closed set of error kinds, a collector that can run in three
// reporting styles, and suppression-comment scanning.
//
// Grounded on escalier's checker/error.go (the isError()-tagged sum of
// concrete error structs, each with Span()/Message()) and on
// original_source/pyrefly's pyrefly/lib/error/collector.rs for the
// style/dedup/suppression policy this spec calls for.
package diag

import (
	"fmt"

	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/types"
)

// Error is the closed sum of diagnostics the checker can produce.
//
//sumtype:decl
type Error interface {
	isError()
	Span() ast.Span
	Kind() string
	Message() string
}

func (e BadAssignmentError) isError()       {}
func (e BadReturnError) isError()           {}
func (e NotCallableError) isError()         {}
func (e BadArgumentCountError) isError()    {}
func (e BadArgumentTypeError) isError()     {}
func (e MissingAttributeError) isError()    {}
func (e UnknownNameError) isError()         {}
func (e AssertTypeFailureError) isError()   {}
func (e RevealTypeInfoError) isError()      {}
func (e NotIterableError) isError()         {}
func (e IndexOutOfRangeError) isError()     {}
func (e MissingTypedDictKeyError) isError() {}
func (e UnexpectedTypedDictKeyError) isError() {}
func (e IncompatibleOverrideError) isError() {}
func (e FinalRedeclarationError) isError()  {}
func (e UnsafeDefaultError) isError()       {}
func (e InconsistentMROError) isError()     {}
func (e NoMatchingOverloadError) isError()  {}
func (e RedundantCastError) isError()       {}
func (e UnreachableCodeError) isError()     {}
func (e InternalError) isError()              {}
func (e TypeArgumentMismatchError) isError()  {}
func (e InstanceOnlyAttributeError) isError() {}
func (e GenericClassAttributeError) isError() {}
func (e NotAwaitableError) isError()          {}
func (e InvalidAnnotationError) isError()     {}
func (e InvalidTypeVarError) isError()        {}
func (e UnsupportedError) isError()           {}
func (e RequiredFieldOrderError) isError()    {}

type BadAssignmentError struct {
	SpanV    ast.Span
	Target   types.Type
	Value    types.Type
}

func (e BadAssignmentError) Span() ast.Span { return e.SpanV }
func (e BadAssignmentError) Kind() string   { return "bad-assignment" }
func (e BadAssignmentError) Message() string {
	return fmt.Sprintf("cannot assign %s to variable of type %s", e.Value, e.Target)
}

type BadReturnError struct {
	SpanV    ast.Span
	Declared types.Type
	Actual   types.Type
}

func (e BadReturnError) Span() ast.Span { return e.SpanV }
func (e BadReturnError) Kind() string   { return "bad-return" }
func (e BadReturnError) Message() string {
	return fmt.Sprintf("returned %s is incompatible with declared return type %s", e.Actual, e.Declared)
}

type NotCallableError struct {
	SpanV ast.Span
	Type  types.Type
}

func (e NotCallableError) Span() ast.Span { return e.SpanV }
func (e NotCallableError) Kind() string   { return "not-callable" }
func (e NotCallableError) Message() string {
	return fmt.Sprintf("%s is not callable", e.Type)
}

type BadArgumentCountError struct {
	SpanV    ast.Span
	Expected int
	Got      int
}

func (e BadArgumentCountError) Span() ast.Span { return e.SpanV }
func (e BadArgumentCountError) Kind() string   { return "bad-argument-count" }
func (e BadArgumentCountError) Message() string {
	return fmt.Sprintf("expected %d argument(s), got %d", e.Expected, e.Got)
}

type BadArgumentTypeError struct {
	SpanV     ast.Span
	ParamName string
	Expected  types.Type
	Got       types.Type
}

func (e BadArgumentTypeError) Span() ast.Span { return e.SpanV }
func (e BadArgumentTypeError) Kind() string   { return "bad-argument-type" }
func (e BadArgumentTypeError) Message() string {
	return fmt.Sprintf("argument %q: expected %s, got %s", e.ParamName, e.Expected, e.Got)
}

type MissingAttributeError struct {
	SpanV     ast.Span
	Type      types.Type
	Attribute string
}

func (e MissingAttributeError) Span() ast.Span { return e.SpanV }
func (e MissingAttributeError) Kind() string   { return "missing-attribute" }
func (e MissingAttributeError) Message() string {
	return fmt.Sprintf("%s has no attribute %q", e.Type, e.Attribute)
}

type UnknownNameError struct {
	SpanV ast.Span
	Name  string
}

func (e UnknownNameError) Span() ast.Span { return e.SpanV }
func (e UnknownNameError) Kind() string   { return "unknown-name" }
func (e UnknownNameError) Message() string {
	return fmt.Sprintf("unknown name %q", e.Name)
}

type AssertTypeFailureError struct {
	SpanV    ast.Span
	Expected types.Type
	Actual   types.Type
}

func (e AssertTypeFailureError) Span() ast.Span { return e.SpanV }
func (e AssertTypeFailureError) Kind() string   { return "assert-type-failure" }
func (e AssertTypeFailureError) Message() string {
	return fmt.Sprintf("assert_type failed: expected %s, got %s", e.Expected, e.Actual)
}

// RevealTypeInfoError is informational rather than an error proper
// (reveal_type always "fails" in the sense of producing output), kept
// in the same sum so the collector's dedup/style machinery applies
// uniformly, per pyrefly's ErrorCollector treating reveal_type the same
// way.
type RevealTypeInfoError struct {
	SpanV ast.Span
	Type  types.Type
}

func (e RevealTypeInfoError) Span() ast.Span { return e.SpanV }
func (e RevealTypeInfoError) Kind() string   { return "reveal-type" }
func (e RevealTypeInfoError) Message() string {
	return fmt.Sprintf("revealed type: %s", e.Type)
}

type NotIterableError struct {
	SpanV ast.Span
	Type  types.Type
}

func (e NotIterableError) Span() ast.Span { return e.SpanV }
func (e NotIterableError) Kind() string   { return "not-iterable" }
func (e NotIterableError) Message() string {
	return fmt.Sprintf("%s is not iterable", e.Type)
}

type IndexOutOfRangeError struct {
	SpanV  ast.Span
	Length int
	Index  int
}

func (e IndexOutOfRangeError) Span() ast.Span { return e.SpanV }
func (e IndexOutOfRangeError) Kind() string   { return "index-out-of-range" }
func (e IndexOutOfRangeError) Message() string {
	return fmt.Sprintf("index %d out of range for tuple of length %d", e.Index, e.Length)
}

type MissingTypedDictKeyError struct {
	SpanV ast.Span
	Key   string
}

func (e MissingTypedDictKeyError) Span() ast.Span { return e.SpanV }
func (e MissingTypedDictKeyError) Kind() string   { return "missing-typeddict-key" }
func (e MissingTypedDictKeyError) Message() string {
	return fmt.Sprintf("missing required key %q", e.Key)
}

type UnexpectedTypedDictKeyError struct {
	SpanV ast.Span
	Key   string
}

func (e UnexpectedTypedDictKeyError) Span() ast.Span { return e.SpanV }
func (e UnexpectedTypedDictKeyError) Kind() string   { return "unexpected-typeddict-key" }
func (e UnexpectedTypedDictKeyError) Message() string {
	return fmt.Sprintf("unexpected key %q", e.Key)
}

type IncompatibleOverrideError struct {
	SpanV      ast.Span
	Class      string
	Base       string
	MethodName string
}

func (e IncompatibleOverrideError) Span() ast.Span { return e.SpanV }
func (e IncompatibleOverrideError) Kind() string   { return "incompatible-override" }
func (e IncompatibleOverrideError) Message() string {
	return fmt.Sprintf("%s.%s has a signature incompatible with %s.%s", e.Class, e.MethodName, e.Base, e.MethodName)
}

type FinalRedeclarationError struct {
	SpanV ast.Span
	Class string
	Field string
	Base  string
}

func (e FinalRedeclarationError) Span() ast.Span { return e.SpanV }
func (e FinalRedeclarationError) Kind() string   { return "final-redeclaration" }
func (e FinalRedeclarationError) Message() string {
	return fmt.Sprintf("%s.%s overrides a Final attribute declared on %s", e.Class, e.Field, e.Base)
}

type UnsafeDefaultError struct {
	SpanV ast.Span
	Class string
	Field string
}

func (e UnsafeDefaultError) Span() ast.Span { return e.SpanV }
func (e UnsafeDefaultError) Kind() string   { return "unsafe-default" }
func (e UnsafeDefaultError) Message() string {
	return fmt.Sprintf("%s.%s: mutable default value shared across instances", e.Class, e.Field)
}

type RequiredFieldOrderError struct {
	SpanV ast.Span
	Class string
	Field string
}

func (e RequiredFieldOrderError) Span() ast.Span { return e.SpanV }
func (e RequiredFieldOrderError) Kind() string   { return "required-field-order" }
func (e RequiredFieldOrderError) Message() string {
	return fmt.Sprintf("%s.%s: field without a default cannot follow a field with one", e.Class, e.Field)
}

type InconsistentMROError struct {
	SpanV ast.Span
	Class string
}

func (e InconsistentMROError) Span() ast.Span { return e.SpanV }
func (e InconsistentMROError) Kind() string   { return "inconsistent-mro" }
func (e InconsistentMROError) Message() string {
	return fmt.Sprintf("cannot create a consistent method resolution order for %s", e.Class)
}

type NoMatchingOverloadError struct {
	SpanV ast.Span
	Name  string
}

func (e NoMatchingOverloadError) Span() ast.Span { return e.SpanV }
func (e NoMatchingOverloadError) Kind() string   { return "no-matching-overload" }
func (e NoMatchingOverloadError) Message() string {
	return fmt.Sprintf("no overload of %q matches the given arguments", e.Name)
}

type RedundantCastError struct {
	SpanV ast.Span
	Type  types.Type
}

func (e RedundantCastError) Span() ast.Span { return e.SpanV }
func (e RedundantCastError) Kind() string   { return "redundant-cast" }
func (e RedundantCastError) Message() string {
	return fmt.Sprintf("redundant cast: value is already %s", e.Type)
}

type UnreachableCodeError struct {
	SpanV ast.Span
}

func (e UnreachableCodeError) Span() ast.Span  { return e.SpanV }
func (e UnreachableCodeError) Kind() string    { return "unreachable" }
func (e UnreachableCodeError) Message() string { return "unreachable code" }

// InternalError reports an invariant violation the solver recovered
// from by substituting Any rather than crashing (§7's "Fatal" tier:
// "does not abort the solve").
type InternalError struct {
	SpanV  ast.Span
	Detail string
}

func (e InternalError) Span() ast.Span { return e.SpanV }
func (e InternalError) Kind() string   { return "internal-error" }
func (e InternalError) Message() string {
	return fmt.Sprintf("internal error: %s", e.Detail)
}

type TypeArgumentMismatchError struct {
	SpanV    ast.Span
	Class    string
	Expected int
	Got      int
}

func (e TypeArgumentMismatchError) Span() ast.Span { return e.SpanV }
func (e TypeArgumentMismatchError) Kind() string   { return "type-argument-mismatch" }
func (e TypeArgumentMismatchError) Message() string {
	return fmt.Sprintf("%s takes %d type argument(s), got %d", e.Class, e.Expected, e.Got)
}

// InstanceOnlyAttributeError reports access to an instance field through
// the class object itself rather than an instance (§4.E).
type InstanceOnlyAttributeError struct {
	SpanV     ast.Span
	Class     string
	Attribute string
}

func (e InstanceOnlyAttributeError) Span() ast.Span { return e.SpanV }
func (e InstanceOnlyAttributeError) Kind() string   { return "instance-only-attribute" }
func (e InstanceOnlyAttributeError) Message() string {
	return fmt.Sprintf("%s.%s is an instance attribute, not accessible on the class object", e.Class, e.Attribute)
}

// GenericClassAttributeError reports access, through the class object,
// to a member whose type depends on the class's own type parameters
// (§4.E) — unavailable without a concrete instance to bind them.
type GenericClassAttributeError struct {
	SpanV     ast.Span
	Class     string
	Attribute string
}

func (e GenericClassAttributeError) Span() ast.Span { return e.SpanV }
func (e GenericClassAttributeError) Kind() string   { return "generic-class-attribute" }
func (e GenericClassAttributeError) Message() string {
	return fmt.Sprintf("%s.%s depends on %s's type parameters and isn't accessible on the class object", e.Class, e.Attribute, e.Class)
}

type NotAwaitableError struct {
	SpanV ast.Span
	Type  types.Type
}

func (e NotAwaitableError) Span() ast.Span { return e.SpanV }
func (e NotAwaitableError) Kind() string   { return "not-awaitable" }
func (e NotAwaitableError) Message() string {
	return fmt.Sprintf("%s cannot be awaited", e.Type)
}

type InvalidAnnotationError struct {
	SpanV  ast.Span
	Detail string
}

func (e InvalidAnnotationError) Span() ast.Span { return e.SpanV }
func (e InvalidAnnotationError) Kind() string   { return "invalid-annotation" }
func (e InvalidAnnotationError) Message() string {
	return fmt.Sprintf("invalid type annotation: %s", e.Detail)
}

type InvalidTypeVarError struct {
	SpanV  ast.Span
	Name   string
	Detail string
}

func (e InvalidTypeVarError) Span() ast.Span { return e.SpanV }
func (e InvalidTypeVarError) Kind() string   { return "invalid-type-var" }
func (e InvalidTypeVarError) Message() string {
	return fmt.Sprintf("invalid type parameter %q: %s", e.Name, e.Detail)
}

type UnsupportedError struct {
	SpanV  ast.Span
	Detail string
}

func (e UnsupportedError) Span() ast.Span { return e.SpanV }
func (e UnsupportedError) Kind() string   { return "unsupported" }
func (e UnsupportedError) Message() string {
	return e.Detail
}
