package checker

import (
	"github.com/typewell-lang/typewell/internal/ast"
	"github.com/typewell-lang/typewell/internal/class"
	"github.com/typewell-lang/typewell/internal/diag"
	"github.com/typewell-lang/typewell/internal/subtype"
	"github.com/typewell-lang/typewell/internal/types"
)

// BuildClass resolves decl's bases, synthesizes its declared fields and
// methods, linearizes its MRO, and runs override checking — everything
// short of checking method bodies, which CheckClassBody does once every
// sibling class in the module has a built Class available for mutual
// reference (§4.E).
func (c *Checker) BuildClass(ctx Context, decl *ast.ClassDef) *types.Class {
	cls := types.NewClass(decl.Name)
	typeParams, sigCtx := c.BuildTypeParams(ctx, decl.TypeParams)
	cls.TypeParams = typeParams

	protocolMarker, bases := splitProtocolMarker(sigCtx, c, decl.Bases)
	cls.Protocol = protocolMarker
	cls.Bases = bases

	if err := class.Linearize(cls); err != nil {
		c.report(diag.InconsistentMROError{SpanV: decl.Span(), Class: decl.Name})
	}

	kind, memberNames := classSynthKind(decl)
	fieldSpecs := c.buildFieldSpecs(sigCtx, decl)

	switch kind {
	case types.SynthRecord:
		if errs, _ := class.SynthesizeRecord(cls, fieldSpecs); len(errs) > 0 {
			for _, f := range fieldSpecs {
				if f.MutableDefault {
					c.report(diag.UnsafeDefaultError{SpanV: decl.Span(), Class: decl.Name, Field: f.Name})
				}
			}
			seenDefault := false
			for _, f := range fieldSpecs {
				if f.KeywordOnly {
					continue
				}
				if f.HasDefault {
					seenDefault = true
					continue
				}
				if seenDefault {
					c.report(diag.RequiredFieldOrderError{SpanV: decl.Span(), Class: decl.Name, Field: f.Name})
				}
			}
		}
	case types.SynthNamedTuple:
		class.SynthesizeNamedTuple(cls, c.Host.Stdlib(), fieldSpecs)
	case types.SynthEnum:
		class.SynthesizeEnum(cls, memberNames)
	case types.SynthTypedDict:
		fields := make([]types.TypedDictField, len(fieldSpecs))
		for i, f := range fieldSpecs {
			fields[i] = types.TypedDictField{
				Name: f.Name, Type: f.Type,
				Qual: types.TypedDictFieldQual{Required: !f.HasDefault},
			}
		}
		init := class.SynthesizeTypedDict(cls, fields)
		cls.Fields["__init__"] = &types.Field{Name: "__init__", Type: init, DefinedOn: cls}
	default:
		for _, f := range fieldSpecs {
			cls.Fields[f.Name] = &types.Field{Name: f.Name, Type: f.Type, DefinedOn: cls}
		}
	}

	for _, m := range decl.Methods {
		sig := c.BuildFunctionSignature(sigCtx, m, cls)
		qual := types.FieldQual{}
		for _, d := range m.Decorators {
			if name, ok := d.Expr.(*ast.NameExpr); ok && name.Name == "final" {
				qual.Final = true
			}
		}
		cls.Fields[m.Name] = &types.Field{Name: m.Name, Type: sig, Qual: qual, DefinedOn: cls}
	}

	c.reportOverrideDiagnostics(cls, fieldSpans(decl))

	return cls
}

// CheckClassBody type-checks every method's body against cls, and every
// plain field initializer expression against its declared type.
func (c *Checker) CheckClassBody(ctx Context, decl *ast.ClassDef, cls *types.Class) {
	for _, m := range decl.Methods {
		sig, ok := cls.Fields[m.Name]
		if !ok {
			continue
		}
		c.CheckFuncBody(ctx, m, sig.Type, cls)
	}
	for _, f := range decl.Fields {
		if f.Init == nil {
			continue
		}
		initType := c.InferExpr(ctx, f.Init)
		declared, ok := cls.Fields[f.Name]
		if ok && !subtype.IsSubsetEq(initType, declared.Type) {
			c.report(diag.BadAssignmentError{SpanV: f.Span(), Target: declared.Type, Value: initType})
		}
	}
}

// reportOverrideDiagnostics re-derives class.CheckOverrides's verdicts
// per field so each diagnostic carries that field's own span rather
// than the class declaration's span, using spans collected from decl's
// own Fields/Methods lists.
func (c *Checker) reportOverrideDiagnostics(cls *types.Class, spans map[string]ast.Span) {
	for name, field := range cls.Fields {
		if field.DefinedOn != cls {
			continue
		}
		span, haveSpan := spans[name]
		if !haveSpan {
			span = ast.NoSpan
		}
		for _, base := range cls.Bases {
			baseField, ok := base.Class.Lookup(name)
			if !ok {
				continue
			}
			if baseField.Qual.Final {
				c.report(diag.FinalRedeclarationError{SpanV: span, Class: cls.QualName, Field: name, Base: baseField.DefinedOn.QualName})
				continue
			}
			if isMethodField(baseField.Type) && isMethodField(field.Type) {
				if !subtype.IsSubsetEq(field.Type, baseField.Type) {
					c.report(diag.IncompatibleOverrideError{SpanV: span, Class: cls.QualName, Base: baseField.DefinedOn.QualName, MethodName: name})
				}
			}
		}
	}
}

func isMethodField(t types.Type) bool {
	switch t.(type) {
	case *types.FunctionType, *types.OverloadType:
		return true
	default:
		return false
	}
}

func fieldSpans(decl *ast.ClassDef) map[string]ast.Span {
	spans := make(map[string]ast.Span, len(decl.Fields)+len(decl.Methods))
	for _, f := range decl.Fields {
		spans[f.Name] = f.Span()
	}
	for _, m := range decl.Methods {
		spans[m.Name] = m.Span()
	}
	return spans
}

// splitProtocolMarker evaluates decl's Bases list, recognizing the
// `Protocol`/`Protocol[...]`/`Generic[...]` special forms structurally
// (§4.B) rather than through dedicated AST nodes, and returns the
// remaining ordinary base classes.
func splitProtocolMarker(ctx Context, c *Checker, baseAnns []ast.TypeAnn) (bool, []*types.ClassType) {
	isProtocol := false
	bases := make([]*types.ClassType, 0, len(baseAnns))
	for _, ann := range baseAnns {
		name := baseAnnName(ann)
		if name == "Protocol" {
			isProtocol = true
			continue
		}
		if name == "Generic" {
			continue
		}
		t := c.InferTypeAnn(ctx, ann)
		if ct, ok := types.Prune(t).(*types.ClassType); ok {
			bases = append(bases, ct)
		}
	}
	return isProtocol, bases
}

func baseAnnName(ann ast.TypeAnn) string {
	switch a := ann.(type) {
	case *ast.NameTypeAnn:
		return a.Name
	case *ast.SubscriptTypeAnn:
		return baseAnnName(a.Base)
	default:
		return ""
	}
}

// classSynthKind recognizes the spec's nominal-synthesis markers
// (record, named tuple, enum, TypedDict) by inspecting decl's base
// classes and decorators structurally, the same way splitProtocolMarker
// recognizes Protocol/Generic.
func classSynthKind(decl *ast.ClassDef) (types.ClassSynthKind, []string) {
	for _, d := range decl.Decorators {
		if name, ok := d.Expr.(*ast.NameExpr); ok && name.Name == "dataclass" {
			return types.SynthRecord, nil
		}
	}
	for _, b := range decl.Bases {
		switch baseAnnName(b) {
		case "NamedTuple":
			return types.SynthNamedTuple, nil
		case "TypedDict":
			return types.SynthTypedDict, nil
		case "Enum", "IntEnum", "StrEnum":
			names := make([]string, 0, len(decl.Fields))
			for _, f := range decl.Fields {
				names = append(names, f.Name)
			}
			return types.SynthEnum, names
		}
	}
	return types.SynthNone, nil
}

// buildFieldSpecs evaluates every plain field declaration's annotation
// and default-value shape into a class.RecordFieldSpec, used whichever
// synthesis path classSynthKind selects (and, for SynthNone, as the
// plain per-field type to install directly).
func (c *Checker) buildFieldSpecs(ctx Context, decl *ast.ClassDef) []class.RecordFieldSpec {
	specs := make([]class.RecordFieldSpec, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		if f.IsClassVar {
			continue
		}
		var t types.Type
		if f.TypeAnn != nil {
			t = c.InferTypeAnn(ctx, f.TypeAnn)
		} else if f.Init != nil {
			t = c.InferExpr(ctx, f.Init)
		} else {
			t = types.NewAnyType(types.GradualProvenance{})
		}
		specs = append(specs, class.RecordFieldSpec{
			Name:           f.Name,
			Type:           t,
			HasDefault:     f.Init != nil,
			MutableDefault: isMutableDefaultLit(f.Init),
		})
	}
	return specs
}

func isMutableDefaultLit(e ast.Expr) bool {
	switch e.(type) {
	case *ast.ListExpr, *ast.DictExpr, *ast.SetExpr:
		return true
	default:
		return false
	}
}
