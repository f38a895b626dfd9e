package analyze

import (
	"fmt"
	"strconv"
	"strings"

	"rxgen/internal/common"
)

// AttributeTargets is the flag set of program elements an attribute may be
// applied to. Values match System.AttributeTargets.
type AttributeTargets uint32

const (
	TargetAssembly         AttributeTargets = 1 << iota // 1
	TargetModule                                        // 2
	TargetClass                                         // 4
	TargetStruct                                        // 8
	TargetEnum                                          // 16
	TargetConstructor                                   // 32
	TargetMethod                                        // 64
	TargetProperty                                      // 128
	TargetField                                         // 256
	TargetEvent                                         // 512
	TargetInterface                                     // 1024
	TargetParameter                                     // 2048
	TargetDelegate                                      // 4096
	TargetReturnValue                                   // 8192
	TargetGenericParameter                              // 16384

	TargetAll AttributeTargets = 1<<15 - 1
)

var targetNames = []struct {
	name   string
	target AttributeTargets
}{
	{"Assembly", TargetAssembly},
	{"Module", TargetModule},
	{"Class", TargetClass},
	{"Struct", TargetStruct},
	{"Enum", TargetEnum},
	{"Constructor", TargetConstructor},
	{"Method", TargetMethod},
	{"Property", TargetProperty},
	{"Field", TargetField},
	{"Event", TargetEvent},
	{"Interface", TargetInterface},
	{"Parameter", TargetParameter},
	{"Delegate", TargetDelegate},
	{"ReturnValue", TargetReturnValue},
	{"GenericParameter", TargetGenericParameter},
}

// Has reports whether every flag in target is set.
func (t AttributeTargets) Has(target AttributeTargets) bool {
	return target != 0 && t&target == target
}

// String renders the flag set as "Field | Property".
func (t AttributeTargets) String() string {
	if t == TargetAll {
		return "All"
	}

	var parts []string
	for _, n := range targetNames {
		if t&n.target != 0 {
			parts = append(parts, n.name)
		}
	}

	if len(parts) == 0 {
		return "None"
	}

	return strings.Join(parts, " | ")
}

// ParseAttributeTargets parses target names ("Field", "AttributeTargets.Property",
// "All") into a flag set.
func ParseAttributeTargets(names []string) (AttributeTargets, error) {
	var out AttributeTargets

	for _, raw := range names {
		name := strings.TrimPrefix(strings.TrimSpace(raw), "AttributeTargets.")
		if strings.EqualFold(name, "All") {
			out |= TargetAll
			continue
		}

		found := false
		for _, n := range targetNames {
			if strings.EqualFold(n.name, name) {
				out |= n.target
				found = true

				break
			}
		}

		if !found {
			return 0, fmt.Errorf("unknown attribute target %q", raw)
		}
	}

	return out, nil
}

// AttributeData is one attribute application on a declaration.
type AttributeData struct {
	// Class is the attribute class metadata name, e.g. "System.ObsoleteAttribute".
	Class string
	// Syntax is the normalized source text inside the brackets, without any
	// target specifier, e.g. `JsonPropertyName("name")`. Empty when the
	// application has no syntax (metadata-only attributes).
	Syntax string
	// Target is the explicit target specifier ("field", "property") or "".
	Target string
	// Args are the positional constructor arguments.
	Args []any
	// Named are the named arguments.
	Named map[string]any
}

// Is reports whether the attribute class is metadataName. The conventional
// "Attribute" suffix may be omitted on either side.
func (a *AttributeData) Is(metadataName string) bool {
	if a.Class == metadataName {
		return true
	}

	return stripAttributeSuffix(a.Class) == stripAttributeSuffix(metadataName)
}

// ShortName returns the attribute class name without namespace or "Attribute" suffix.
func (a *AttributeData) ShortName() string {
	return common.TrimAttributeSuffix(common.ShortName(a.Class))
}

// NamedBool returns a boolean named argument. Strings such as "true" are accepted.
func (a *AttributeData) NamedBool(name string) (value, ok bool) {
	raw, found := a.Named[name]
	if !found {
		return false, false
	}

	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, false
		}

		return b, true
	default:
		return false, false
	}
}

// NamedString returns a string named argument; empty strings count as absent.
func (a *AttributeData) NamedString(name string) (string, bool) {
	v, ok := a.Named[name].(string)
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

// PositionalString returns the positional argument at index i if it is a string.
func (a *AttributeData) PositionalString(i int) (string, bool) {
	if i < 0 || i >= len(a.Args) {
		return "", false
	}

	v, ok := a.Args[i].(string)

	return v, ok
}

func stripAttributeSuffix(name string) string {
	ns, short := common.Namespace(name), common.ShortName(name)

	return common.JoinQualified(ns, common.TrimAttributeSuffix(short))
}
