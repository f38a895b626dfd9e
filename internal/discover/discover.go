// Package discover finds declarations carrying a generation marker, checks
// that their shape can be generated and extracts the marker's arguments.
package discover

import (
	"slices"

	"rxgen/internal/analyze"
	"rxgen/internal/common"
	"rxgen/internal/match"
)

// Outcome classifies a declaration against a Rule.
type Outcome int

const (
	// OutcomeAbsent means the declaration does not carry the marker.
	OutcomeAbsent Outcome = iota
	// OutcomeIneligible means the marker is present on an unsupported declaration shape.
	OutcomeIneligible
	// OutcomeUnresolved means the marker is present but the containing type is unknown.
	OutcomeUnresolved
	// OutcomeFound means the declaration can be generated.
	OutcomeFound
)

// String returns a human-readable representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeAbsent:
		return "absent"
	case OutcomeIneligible:
		return "ineligible"
	case OutcomeUnresolved:
		return "unresolved"
	case OutcomeFound:
		return "found"
	default:
		return common.UnknownStr
	}
}

// Rule describes one marker and the declaration shapes it applies to.
type Rule struct {
	// Marker is the attribute class metadata name.
	Marker string
	// Members lists the eligible member kinds.
	Members []analyze.MemberKind
}

// Arguments are the marker's own arguments.
type Arguments struct {
	// ReadOnly is nil when the marker does not set it.
	ReadOnly     *bool
	PropertyName string
	CanExecute   string
	// BaseType is the single positional string argument, if present.
	BaseType string
}

// Marker is a discovered, eligible marker application.
type Marker struct {
	Declaration *analyze.Declaration
	Container   *analyze.TypeSymbol
	// Index is the position of the marker in Declaration.Attributes.
	Index     int
	Arguments Arguments
}

// Discover checks decl against the rule. Only OutcomeFound returns a usable Marker.
func (r Rule) Discover(decl *analyze.Declaration) (Marker, Outcome) {
	if decl == nil {
		return Marker{}, OutcomeAbsent
	}

	idx := slices.IndexFunc(decl.Attributes, func(a analyze.AttributeData) bool {
		return a.Is(r.Marker)
	})
	if idx < 0 {
		return Marker{}, OutcomeAbsent
	}

	if !slices.Contains(r.Members, decl.Kind) {
		return Marker{}, OutcomeIneligible
	}

	container := decl.ContainingType
	if container == nil || container.Kind == analyze.TypeKindUnknown {
		return Marker{}, OutcomeUnresolved
	}

	if !container.Kind.IsClassLike() {
		return Marker{}, OutcomeIneligible
	}

	return Marker{
		Declaration: decl,
		Container:   container,
		Index:       idx,
		Arguments:   extractArguments(&decl.Attributes[idx]),
	}, OutcomeFound
}

// Others returns the declaration's attributes with every application of the
// marker removed, in source order.
func (m Marker) Others(marker string) []analyze.AttributeData {
	return common.Filter(m.Declaration.Attributes, func(a analyze.AttributeData) bool {
		return !a.Is(marker)
	})
}

func extractArguments(a *analyze.AttributeData) Arguments {
	var args Arguments

	if v, ok := a.NamedBool("ReadOnly"); ok {
		args.ReadOnly = &v
	}

	args.PropertyName, _ = a.NamedString("PropertyName")
	args.CanExecute, _ = a.NamedString("CanExecute")

	if common.IsSingle(a.Args) {
		args.BaseType, _ = a.PositionalString(0)
	}

	return args
}

// NearMiss is an attribute whose name looks like a misspelled marker.
type NearMiss struct {
	Attribute  analyze.AttributeData
	Suggestion string
}

// maxMarkerDistance is the largest edit distance reported as a near miss.
const maxMarkerDistance = 2

// NearMisses reports attributes on decl that are not one of markers but whose
// short name is within a small edit distance of a marker's short name.
func NearMisses(decl *analyze.Declaration, markers []string) []NearMiss {
	names := make([]string, 0, len(markers))
	for _, m := range markers {
		names = append(names, common.TrimAttributeSuffix(common.ShortName(m)))
	}

	var out []NearMiss

	for _, a := range decl.Attributes {
		if slices.ContainsFunc(markers, a.Is) {
			continue
		}

		if s, ok := match.Closest(a.ShortName(), names, maxMarkerDistance); ok {
			out = append(out, NearMiss{Attribute: a, Suggestion: s})
		}
	}

	return out
}
