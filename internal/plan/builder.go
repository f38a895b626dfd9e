package plan

import (
	"slices"
	"strings"

	"rxgen/internal/analyze"
	"rxgen/internal/common"
	"rxgen/internal/config"
	"rxgen/internal/discover"
	"rxgen/internal/forward"
)

// Marker returns the marker metadata name the family answers to.
func (f Family) Marker(c config.Conventions) string {
	if f == FamilyReactiveCommand {
		return c.CommandMarker
	}

	return c.PropertyMarker
}

// Rule returns the discovery rule of the family.
func (f Family) Rule(c config.Conventions) discover.Rule {
	members := []analyze.MemberKind{analyze.MemberKindMethod, analyze.MemberKindProperty}
	if f == FamilyReactiveCommand {
		members = []analyze.MemberKind{analyze.MemberKindMethod}
	}

	return discover.Rule{Marker: f.Marker(c), Members: members}
}

// Builder turns discovered markers into descriptors. It holds no mutable
// state and may be shared between goroutines.
type Builder struct {
	Oracle      analyze.Oracle
	Conventions config.Conventions
}

// NewBuilder creates a Builder; empty convention names take their defaults.
func NewBuilder(oracle analyze.Oracle, c config.Conventions) *Builder {
	return &Builder{Oracle: oracle, Conventions: c.WithDefaults()}
}

// Build builds the descriptor of m for the given family.
// It returns false when no descriptor can be produced.
func (b *Builder) Build(family Family, m discover.Marker) (*Descriptor, bool) {
	switch family {
	case FamilyObservableAsProperty:
		return b.BuildObservable(m)
	case FamilyReactiveCommand:
		return b.BuildCommand(m)
	default:
		return nil, false
	}
}

// BuildObservable builds an ObservableAsProperty descriptor. The produced
// type is the stream element type for stream-shaped sources and the member's
// own type otherwise.
func (b *Builder) BuildObservable(m discover.Marker) (*Descriptor, bool) {
	if m.Declaration == nil {
		return nil, false
	}

	d, ret, ok := b.describe(FamilyObservableAsProperty, m, m.Declaration.Name)
	if !ok {
		return nil, false
	}

	if elem, stream := IsStreamType(b.Oracle, ret, b.Conventions.StreamType); stream {
		d.Shape.ReturnIsStream = true
		d.Produced = typeInfoOf(elem)
	} else {
		d.Produced = d.Return
	}

	return d, true
}

// BuildCommand builds a ReactiveCommand descriptor from a method.
//
// Result kinds: void gives Unit (sync), Task gives Unit (task), Task<T> gives
// T (task), a stream of T gives T (observable), anything else gives itself (sync).
func (b *Builder) BuildCommand(m discover.Marker) (*Descriptor, bool) {
	if m.Declaration == nil || m.Declaration.Kind != analyze.MemberKindMethod {
		return nil, false
	}

	d, ret, ok := b.describe(FamilyReactiveCommand, m, m.Declaration.Name+"Command")
	if !ok {
		return nil, false
	}

	unit := typeInfoOf(b.Oracle.Resolve(b.Conventions.UnitType, nil))
	shape := &CommandShape{Kind: CommandSync, Parameter: unit, Result: d.Return, HasResult: true}

	if d.Argument != nil {
		shape.Parameter = *d.Argument
		shape.HasParameter = true
	}

	task := common.GlobalPrefix + strings.TrimPrefix(b.Conventions.TaskType, common.GlobalPrefix)

	switch {
	case ret.IsVoid():
		shape.Result, shape.HasResult = unit, false
	case ret.DefinitionName() == task && len(ret.Args) == 0:
		shape.Kind = CommandTask
		shape.Result, shape.HasResult = unit, false
	case ret.DefinitionName() == task && len(ret.Args) == 1:
		shape.Kind = CommandTask
		shape.Result = typeInfoOf(ret.Args[0])
	default:
		if elem, stream := IsStreamType(b.Oracle, ret, b.Conventions.StreamType); stream {
			d.Shape.ReturnIsStream = true
			shape.Kind = CommandObservable
			shape.Result = typeInfoOf(elem)
		}
	}

	d.Command = shape
	d.Produced = shape.Result

	return d, true
}

// describe fills the family-independent parts of a descriptor and returns the
// resolved member type.
func (b *Builder) describe(family Family, m discover.Marker, defaultName string) (*Descriptor, *analyze.Type, bool) {
	decl := m.Declaration
	if decl == nil || m.Container == nil {
		return nil, nil, false
	}

	ret := b.Oracle.Resolve(decl.Type, m.Container)
	if ret == nil {
		return nil, nil, false
	}

	opts := Options{
		ReadOnly:     true,
		PropertyName: strings.TrimSpace(m.Arguments.PropertyName),
		CanExecute:   strings.TrimSpace(m.Arguments.CanExecute),
		BaseType:     strings.TrimSpace(m.Arguments.BaseType),
	}

	if m.Arguments.ReadOnly != nil {
		opts.ReadOnly = *m.Arguments.ReadOnly
	}

	name := opts.PropertyName
	if name == "" {
		name = defaultName
	}

	d := &Descriptor{
		Family: family,
		Target: targetInfoOf(m.Container),
		Member: MemberInfo{
			Name:         decl.Name,
			Kind:         decl.Kind,
			PropertyName: name,
		},
		Return:  typeInfoOf(ret),
		Options: opts,
	}

	if decl.Kind == analyze.MemberKindMethod {
		if p, ok := decl.FirstParameter(); ok {
			arg := b.Oracle.Resolve(p.Type, m.Container)
			info := typeInfoOf(arg)
			d.Argument = &info
			_, d.Shape.ArgumentIsStream = IsStreamType(b.Oracle, arg, b.Conventions.StreamType)
		}
	}

	others := m.Others(family.Marker(b.Conventions))
	d.Forwarded = NewForwarded(
		forward.Resolve(b.Oracle, others, analyze.TargetField),
		forward.Resolve(b.Oracle, others, analyze.TargetProperty),
	)

	return d, ret, true
}

func targetInfoOf(sym *analyze.TypeSymbol) TargetInfo {
	return TargetInfo{
		Name:               sym.Name(),
		Namespace:          sym.Namespace(),
		FullName:           sym.FullName(),
		FullyQualifiedName: sym.FullyQualifiedName(),
		Visibility:         sym.Accessibility.String(),
		Kind:               sym.Kind.String(),
		TypeParameters:     slices.Clone(sym.TypeParameters),
		FileHint:           sym.FullName(),
	}
}
