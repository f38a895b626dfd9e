package plan

import (
	"fmt"
	"slices"
	"strings"

	"rxgen/internal/analyze"
	"rxgen/internal/common"
	"rxgen/internal/forward"
)

//go:generate go tool stringer -type=Family -trimprefix=Family

// Family identifies a generation family: the marker it answers to and the
// companion members it emits.
type Family int

const (
	FamilyObservableAsProperty Family = iota
	FamilyReactiveCommand
)

// Families lists every generation family in emission order.
var Families = []Family{FamilyObservableAsProperty, FamilyReactiveCommand}

// ParseFamily parses a family name such as "ReactiveCommand" (case-insensitive).
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if strings.EqualFold(strings.TrimSpace(s), f.String()) {
			return f, nil
		}
	}

	return 0, fmt.Errorf("unknown generation family %q", s)
}

// ForwardedAttribute is an attribute re-emitted on a generated member.
type ForwardedAttribute = forward.Attribute

// TargetInfo describes the type that owns the generated members.
type TargetInfo struct {
	// Name is the simple type name.
	Name string
	// Namespace is empty for the global namespace.
	Namespace string
	// FullName is the namespace-qualified name; it is the grouping key.
	FullName string
	// FullyQualifiedName is the global::-prefixed name with type parameters.
	FullyQualifiedName string
	// Visibility is the declared modifier text ("public", "protected internal").
	Visibility string
	// Kind is the declaration keyword ("class", "record").
	Kind string
	// TypeParameters are repeated on the partial declaration.
	TypeParameters []string
	// FileHint names the output unit.
	FileHint string
}

// MemberInfo describes the marked source member.
type MemberInfo struct {
	// Name is the source member name.
	Name string
	// Kind is either MemberKindMethod or MemberKindProperty.
	Kind analyze.MemberKind
	// PropertyName is the generated property name.
	PropertyName string
}

// IsMethod reports whether the member is method-backed.
func (m MemberInfo) IsMethod() bool {
	return m.Kind == analyze.MemberKindMethod
}

// FieldName is the generated backing-field name.
func (m MemberInfo) FieldName() string {
	return common.FieldName(m.PropertyName)
}

// HelperFieldName is the generated helper-field name of an observable property.
func (m MemberInfo) HelperFieldName() string {
	return m.FieldName() + "Helper"
}

// TypeInfo is a resolved type as generated code refers to it.
type TypeInfo struct {
	Name string
	// FullyQualifiedName is global::-prefixed, with keyword types as keywords.
	FullyQualifiedName string
	Namespace          string
}

// String returns the fully qualified name.
func (t TypeInfo) String() string {
	return t.FullyQualifiedName
}

func typeInfoOf(t *analyze.Type) TypeInfo {
	if t == nil {
		return TypeInfo{}
	}

	return TypeInfo{
		Name:               t.Name(),
		FullyQualifiedName: t.FullyQualifiedName(),
		Namespace:          t.Namespace(),
	}
}

// SourceShape records which of the member's types are stream-shaped.
type SourceShape struct {
	ReturnIsStream   bool
	ArgumentIsStream bool
}

// Options are the marker's arguments after defaults are applied.
type Options struct {
	// ReadOnly marks the generated backing field readonly. Defaults to true.
	ReadOnly bool
	// PropertyName overrides the generated property name.
	PropertyName string
	// CanExecute names a member supplying the command's can-execute stream.
	CanExecute string
	// BaseType is the marker's single positional string argument.
	BaseType string
}

// Forwarded holds the attributes copied onto the generated field and property.
// It is immutable; accessors return copies.
type Forwarded struct {
	field    []ForwardedAttribute
	property []ForwardedAttribute
}

// NewForwarded copies both slot lists.
func NewForwarded(field, property []ForwardedAttribute) Forwarded {
	return Forwarded{field: slices.Clone(field), property: slices.Clone(property)}
}

// Field returns the attributes for the generated backing field.
func (f Forwarded) Field() []ForwardedAttribute {
	return slices.Clone(f.field)
}

// Property returns the attributes for the generated property.
func (f Forwarded) Property() []ForwardedAttribute {
	return slices.Clone(f.property)
}

// IsEmpty reports whether neither slot has attributes.
func (f Forwarded) IsEmpty() bool {
	return len(f.field) == 0 && len(f.property) == 0
}

// CommandKind is how a command executes its method.
type CommandKind int

const (
	CommandSync CommandKind = iota
	CommandTask
	CommandObservable
)

// String returns the kind name.
func (k CommandKind) String() string {
	switch k {
	case CommandSync:
		return "sync"
	case CommandTask:
		return "task"
	case CommandObservable:
		return "observable"
	default:
		return common.UnknownStr
	}
}

// CommandShape describes a generated command.
type CommandShape struct {
	Kind CommandKind
	// Parameter is the command input; Unit when the method takes no parameters.
	Parameter TypeInfo
	// HasParameter is false when Parameter is the Unit stand-in.
	HasParameter bool
	// Result is the command output; Unit for void and Task methods.
	Result TypeInfo
	// HasResult is false when Result is the Unit stand-in.
	HasResult bool
}

// Descriptor is the immutable description of one generated member.
type Descriptor struct {
	Family Family
	Target TargetInfo
	Member MemberInfo
	// Produced is the value type the generated member exposes.
	Produced TypeInfo
	// Return is the member's declared type (method return type).
	Return TypeInfo
	// Argument is the first parameter type of a method; nil otherwise.
	Argument  *TypeInfo
	Shape     SourceShape
	Options   Options
	Forwarded Forwarded
	// Command is set for FamilyReactiveCommand.
	Command *CommandShape
}

// GeneratedNames lists every member name the descriptor adds to its owning type.
func (d *Descriptor) GeneratedNames() []string {
	names := []string{d.Member.FieldName()}
	if d.Family == FamilyObservableAsProperty {
		names = append(names, d.Member.HelperFieldName())
	}

	return append(names, d.Member.PropertyName)
}
