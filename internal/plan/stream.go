package plan

import (
	"strings"

	"rxgen/internal/analyze"
	"rxgen/internal/common"
)

// IsStreamType reports whether t is, or derives from, the generic definition
// streamType (a namespace-qualified name such as "System.IObservable").
// It returns the first type argument of the matching level in the chain.
//
// Levels are compared by fully qualified definition name, so a type with the
// same short name in another namespace never matches.
func IsStreamType(oracle analyze.Oracle, t *analyze.Type, streamType string) (*analyze.Type, bool) {
	want := common.GlobalPrefix + strings.TrimPrefix(strings.TrimSpace(streamType), common.GlobalPrefix)
	seen := make(map[string]bool)

	for cur := t; cur != nil; cur = oracle.BaseType(cur) {
		key := cur.FullyQualifiedName()
		if seen[key] {
			return nil, false
		}

		seen[key] = true

		if cur.DefinitionName() == want && len(cur.Args) > 0 {
			return cur.Args[0], true
		}
	}

	return nil, false
}
