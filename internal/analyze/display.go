package analyze

import (
	"strings"

	"rxgen/internal/common"
)

// Type is a resolved type reference: a symbol plus substituted type arguments.
//
// Error types (references the compilation cannot resolve) keep the name as
// written and have a nil Symbol; they never have a base type.
type Type struct {
	Symbol        *TypeSymbol
	ID            TypeID
	Args          []*Type
	Elem          *Type // set for array types
	Nullable      bool
	TypeParameter bool
}

// IsError reports whether the reference could not be resolved.
func (t *Type) IsError() bool {
	return t.Symbol == nil && t.Elem == nil && !t.TypeParameter
}

// Name returns the simple metadata name ("String", "IObservable", "Item[]").
func (t *Type) Name() string {
	if t.Elem != nil {
		return t.Elem.Name() + "[]"
	}

	return t.ID.Name
}

// Namespace returns the containing namespace; arrays and type parameters have none.
func (t *Type) Namespace() string {
	if t.Elem != nil || t.TypeParameter {
		return ""
	}

	return t.ID.Namespace
}

var voidID = TypeID{Namespace: "System", Name: "Void"}

// IsVoid reports whether the type is System.Void.
func (t *Type) IsVoid() bool {
	return t.Elem == nil && t.ID == voidID
}

// DefinitionName returns the global::-qualified name of the generic
// definition without type arguments, e.g. "global::System.IObservable".
// Arrays and type parameters have no definition name.
func (t *Type) DefinitionName() string {
	if t.Elem != nil || t.TypeParameter {
		return ""
	}

	return common.GlobalPrefix + common.JoinQualified(t.ID.Namespace, t.ID.Name)
}

// FullyQualifiedName renders the type the way generated code refers to it:
// global::-qualified, special types as keywords, type arguments included.
func (t *Type) FullyQualifiedName() string {
	return t.render(true)
}

// DisplayName renders the type without the global:: alias.
func (t *Type) DisplayName() string {
	return t.render(false)
}

func (t *Type) render(global bool) string {
	var sb strings.Builder

	switch {
	case t.Elem != nil:
		sb.WriteString(t.Elem.render(global))
		sb.WriteString("[]")
	case t.TypeParameter:
		sb.WriteString(t.ID.Name)
	case t.Symbol != nil && t.Symbol.Keyword != "":
		sb.WriteString(t.Symbol.Keyword)
	default:
		if global {
			sb.WriteString(common.GlobalPrefix)
		}

		sb.WriteString(common.JoinQualified(t.ID.Namespace, t.ID.Name))

		if len(t.Args) > 0 {
			sb.WriteByte('<')

			for i, a := range t.Args {
				if i > 0 {
					sb.WriteString(", ")
				}

				sb.WriteString(a.render(global))
			}

			sb.WriteByte('>')
		}
	}

	if t.Nullable {
		sb.WriteByte('?')
	}

	return sb.String()
}

// String implements fmt.Stringer.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return t.DisplayName()
}
