// Package forward decides which attributes written on a marked member are
// copied onto the generated field and property.
package forward

import (
	"strings"

	"rxgen/internal/analyze"
	"rxgen/internal/common"
)

// Attribute is one attribute to re-emit on a generated member.
type Attribute struct {
	// Namespace of the attribute class; empty for the global namespace.
	Namespace string
	// Syntax is the attribute text as written, without brackets.
	Syntax string
}

// String renders the attribute as it appears in generated code.
func (a Attribute) String() string {
	return "[" + common.JoinQualified(a.Namespace, a.Syntax) + "]"
}

// slotNames maps explicit target specifiers to the slot they select.
var slotNames = map[string]analyze.AttributeTargets{
	"field":    analyze.TargetField,
	"property": analyze.TargetProperty,
}

// Resolve returns, in their original order, the attributes from attrs that
// are valid on target. attrs must already exclude the generation marker.
//
// An attribute is dropped when its class cannot be resolved, when it has no
// syntax, when its explicit target specifier names another slot, or when its
// class restricts usage to targets not including target. A class without a
// usage restriction applies everywhere.
func Resolve(oracle analyze.Oracle, attrs []analyze.AttributeData, target analyze.AttributeTargets) []Attribute {
	var out []Attribute

	for i := range attrs {
		a := &attrs[i]

		syntax := strings.TrimSpace(a.Syntax)
		if syntax == "" {
			continue
		}

		if a.Target != "" && slotNames[strings.ToLower(a.Target)] != target {
			continue
		}

		class := oracle.AttributeClass(a.Class)
		if class == nil {
			continue
		}

		if class.Usage != nil && !class.Usage.Has(target) {
			continue
		}

		out = append(out, Attribute{Namespace: class.Namespace(), Syntax: syntax})
	}

	return out
}

// Dropped returns the attributes from attrs that reach neither the field
// nor the property slot, in their original order.
func Dropped(oracle analyze.Oracle, attrs []analyze.AttributeData) []analyze.AttributeData {
	var out []analyze.AttributeData

	for i := range attrs {
		one := attrs[i : i+1]
		if len(Resolve(oracle, one, analyze.TargetField)) == 0 && len(Resolve(oracle, one, analyze.TargetProperty)) == 0 {
			out = append(out, attrs[i])
		}
	}

	return out
}
