package subtype

import "github.com/typewell-lang/typewell/internal/types"

// typedDictIsSubsetEq: every field super requires must be present on sub
// with a compatible type; Required is checked independently of
// ReadOnly, following pyre2's typed_dict.rs treatment of the two axes
// as orthogonal. A ReadOnly field on super only demands covariance; a
// mutable field demands invariance (a writer through the super view
// must not corrupt sub's declared type).
func (s *Solver) typedDictIsSubsetEq(sub, super *types.TypedDictType) bool {
	for _, sf := range super.Fields {
		subField, ok := sub.Field(sf.Name)
		if !ok {
			if sf.Qual.Required {
				return false
			}
			continue
		}
		if sf.Qual.Required && !subField.Qual.Required {
			return false
		}
		if sf.Qual.ReadOnly {
			if !s.IsSubsetEq(subField.Type, sf.Type) {
				return false
			}
			continue
		}
		if !s.IsSubsetEq(subField.Type, sf.Type) || !s.IsSubsetEq(sf.Type, subField.Type) {
			return false
		}
	}
	return true
}
