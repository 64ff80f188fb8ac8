package types

// Class is the nominal handle every ClassType/ClassDefType/SelfType
// points at. The type algebra only needs enough of a class to print and
// compare types; MRO linearization and field synthesis (component B,
// package internal/class) populate and mutate these fields once a
// class's bases are fully resolved.
type Class struct {
	QualName   string
	TypeParams []*QuantifiedType

	// Bases are the Base classes exactly as written, before linearization.
	Bases []*ClassType

	// MRO is the C3-linearized method resolution order, Class itself
	// first, `object` last. Empty until internal/class computes it.
	MRO []*Class

	// Protocol marks a class declared via `class C(Protocol): ...`;
	// protocol subtyping is structural rather than nominal (§4.B).
	Protocol bool

	// Fields holds every member synthesized or declared on this class,
	// keyed by name; internal/class populates this from the class body
	// plus any record/named-tuple/TypedDict/enum synthesis.
	Fields map[string]*Field

	// Synth tags special synthesis the checker must account for beyond
	// ordinary fields (constructor shape, __iter__, __match_args__).
	Synth ClassSynthKind
}

type ClassSynthKind int

const (
	SynthNone ClassSynthKind = iota
	SynthRecord
	SynthNamedTuple
	SynthTypedDict
	SynthEnum
)

// FieldQual tracks per-field modifiers independent of a field's type
// (§4.A, §4.C): ClassVar fields don't participate in __init__, Final
// fields reject redeclaration in a subclass, ReadOnly blocks assignment.
type FieldQual struct {
	ClassVar bool
	Final    bool
	ReadOnly bool
}

// Field is one member of a class's namespace: a plain attribute, a
// method (Type is a *FunctionType or *OverloadType), or a property.
type Field struct {
	Name      string
	Type      Type
	Qual      FieldQual
	DefinedOn *Class // the class in MRO order that actually declares it
}

func NewClass(qualName string) *Class {
	return &Class{QualName: qualName, Fields: map[string]*Field{}}
}

// Lookup resolves a field by walking MRO in order (§4.E); the first hit
// wins, matching Python's attribute lookup.
func (c *Class) Lookup(name string) (*Field, bool) {
	mro := c.MRO
	if len(mro) == 0 {
		mro = []*Class{c}
	}
	for _, k := range mro {
		if f, ok := k.Fields[name]; ok {
			return f, true
		}
	}
	return nil, false
}

// Stdlib is the fixed set of builtin classes the type algebra needs
// handles to (literal widening, operator dunders, container displays).
// A host supplies real ones backed by its binding graph (§6); fixtures
// use NewStdlib to synthesize bare handles for tests.
type Stdlib struct {
	Object   *Class
	Bool     *Class
	Int      *Class
	Float    *Class
	Complex  *Class
	Str      *Class
	Bytes    *Class
	List     *Class
	Dict     *Class
	Set      *Class
	FrozenSet *Class
	Tuple    *Class
	Type     *Class
	BaseException *Class
}

func NewStdlib() *Stdlib {
	mk := func(name string) *Class { return NewClass(name) }
	return &Stdlib{
		Object:        mk("object"),
		Bool:          mk("bool"),
		Int:           mk("int"),
		Float:         mk("float"),
		Complex:       mk("complex"),
		Str:           mk("str"),
		Bytes:         mk("bytes"),
		List:          mk("list"),
		Dict:          mk("dict"),
		Set:           mk("set"),
		FrozenSet:     mk("frozenset"),
		Tuple:         mk("tuple"),
		Type:          mk("type"),
		BaseException: mk("BaseException"),
	}
}
