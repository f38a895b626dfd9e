package analyze

import (
	"fmt"
	"strconv"
	"strings"

	"rxgen/internal/common"
)

// TypeID uniquely identifies a type definition by namespace, name and arity.
type TypeID struct {
	Namespace string // e.g., "System"
	Name      string // e.g., "IObservable"
	Arity     int    // number of type parameters
}

// String returns the metadata name, e.g. "System.IObservable`1".
func (t TypeID) String() string {
	s := common.JoinQualified(t.Namespace, t.Name)
	if t.Arity > 0 {
		s += "`" + strconv.Itoa(t.Arity)
	}

	return s
}

// TypeKind represents the declaration kind of a type.
type TypeKind int

const (
	TypeKindUnknown      TypeKind = iota
	TypeKindClass                 // class
	TypeKindRecord                // record (class)
	TypeKindStruct                // struct
	TypeKindRecordStruct          // record struct
	TypeKindInterface             // interface
	TypeKindEnum                  // enum
)

// String returns the C# keyword for the kind, as used in a partial declaration.
func (k TypeKind) String() string {
	switch k {
	case TypeKindClass:
		return "class"
	case TypeKindRecord:
		return "record"
	case TypeKindStruct:
		return "struct"
	case TypeKindRecordStruct:
		return "record struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindEnum:
		return "enum"
	default:
		return common.UnknownStr
	}
}

// IsClassLike reports whether members of this kind may carry generation markers.
func (k TypeKind) IsClassLike() bool {
	return k == TypeKindClass || k == TypeKindRecord
}

// IsValueType reports whether the kind declares a value type.
func (k TypeKind) IsValueType() bool {
	return k == TypeKindStruct || k == TypeKindRecordStruct || k == TypeKindEnum
}

// ParseTypeKind parses a kind keyword. Unrecognized input yields TypeKindUnknown.
func ParseTypeKind(s string) TypeKind {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "class":
		return TypeKindClass
	case "record", "record class":
		return TypeKindRecord
	case "struct":
		return TypeKindStruct
	case "record struct":
		return TypeKindRecordStruct
	case "interface":
		return TypeKindInterface
	case "enum":
		return TypeKindEnum
	default:
		return TypeKindUnknown
	}
}

// Accessibility is the declared accessibility of a type or member.
type Accessibility int

const (
	AccessibilityNotApplicable Accessibility = iota
	AccessibilityPublic
	AccessibilityInternal
	AccessibilityProtected
	AccessibilityPrivate
	AccessibilityProtectedInternal
	AccessibilityPrivateProtected
)

// String returns the modifier text for the accessibility.
func (a Accessibility) String() string {
	switch a {
	case AccessibilityPublic:
		return "public"
	case AccessibilityInternal:
		return "internal"
	case AccessibilityProtected:
		return "protected"
	case AccessibilityPrivate:
		return "private"
	case AccessibilityProtectedInternal:
		return "protected internal"
	case AccessibilityPrivateProtected:
		return "private protected"
	default:
		return common.UnknownStr
	}
}

// ParseAccessibility parses a modifier string such as "protected internal".
func ParseAccessibility(s string) (Accessibility, error) {
	switch strings.Join(strings.Fields(strings.ToLower(s)), " ") {
	case "public":
		return AccessibilityPublic, nil
	case "internal":
		return AccessibilityInternal, nil
	case "protected":
		return AccessibilityProtected, nil
	case "private":
		return AccessibilityPrivate, nil
	case "protected internal", "internal protected":
		return AccessibilityProtectedInternal, nil
	case "private protected", "protected private":
		return AccessibilityPrivateProtected, nil
	default:
		return AccessibilityNotApplicable, fmt.Errorf("unknown accessibility %q", s)
	}
}

// MemberKind is the syntactic kind of a member declaration.
type MemberKind int

const (
	MemberKindUnknown MemberKind = iota
	MemberKindMethod
	MemberKindProperty
	MemberKindField
	MemberKindEvent
)

// String returns a human-readable representation of the MemberKind.
func (k MemberKind) String() string {
	switch k {
	case MemberKindMethod:
		return "method"
	case MemberKindProperty:
		return "property"
	case MemberKindField:
		return "field"
	case MemberKindEvent:
		return "event"
	default:
		return common.UnknownStr
	}
}

// ParseMemberKind parses a member kind. Unrecognized input yields MemberKindUnknown.
func ParseMemberKind(s string) MemberKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "method":
		return MemberKindMethod
	case "property":
		return MemberKindProperty
	case "field":
		return MemberKindField
	case "event":
		return MemberKindEvent
	default:
		return MemberKindUnknown
	}
}

// TypeSymbol describes a declared (or built-in) type.
type TypeSymbol struct {
	ID             TypeID
	Kind           TypeKind
	Accessibility  Accessibility
	TypeParameters []string
	// Base is the declared base type reference as written; it may mention
	// TypeParameters. Empty means the implicit base for the kind.
	Base string
	// Usage is the attribute's declared valid-target set; nil when the type
	// declares no restriction.
	Usage *AttributeTargets
	// Keyword is the C# keyword for special types ("string", "int"), if any.
	Keyword string
	// Members are the declarations nested directly in this type, in source order.
	Members []*Declaration
}

// Name returns the simple type name.
func (s *TypeSymbol) Name() string {
	return s.ID.Name
}

// Namespace returns the containing namespace ("" for the global namespace).
func (s *TypeSymbol) Namespace() string {
	return s.ID.Namespace
}

// FullName returns the namespace-qualified name without arity or type arguments.
func (s *TypeSymbol) FullName() string {
	return common.JoinQualified(s.ID.Namespace, s.ID.Name)
}

// FullyQualifiedName returns the global::-prefixed display name of the type,
// including its type parameters for generic definitions.
func (s *TypeSymbol) FullyQualifiedName() string {
	name := common.GlobalPrefix + s.FullName()
	if len(s.TypeParameters) > 0 {
		name += "<" + strings.Join(s.TypeParameters, ", ") + ">"
	}

	return name
}

// IsTypeParameter reports whether name is one of the type's type parameters.
func (s *TypeSymbol) IsTypeParameter(name string) bool {
	for _, p := range s.TypeParameters {
		if p == name {
			return true
		}
	}

	return false
}

// Parameter is a method parameter.
type Parameter struct {
	Name string
	Type string
}

// Declaration is a member declaration as seen by the host compiler.
type Declaration struct {
	Name          string
	Kind          MemberKind
	Accessibility Accessibility
	// Type is the property/field type or the method return type, as written.
	Type       string
	Parameters []Parameter
	// Attributes are the applied attributes in source order.
	Attributes []AttributeData
	// ContainingType is nil for declarations outside any type.
	ContainingType *TypeSymbol
}

// FirstParameter returns the first parameter, if any.
func (d *Declaration) FirstParameter() (Parameter, bool) {
	return common.First(d.Parameters)
}

// HasAttribute reports whether any applied attribute is of the given class.
func (d *Declaration) HasAttribute(metadataName string) bool {
	for i := range d.Attributes {
		if d.Attributes[i].Is(metadataName) {
			return true
		}
	}

	return false
}
