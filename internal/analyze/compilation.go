package analyze

import (
	"strings"

	"rxgen/internal/common"
)

// Oracle is the read-only semantic model the generator queries.
// Implementations must be safe for concurrent use.
type Oracle interface {
	// Declarations returns every member declaration carrying an attribute of
	// the given class, in source order.
	Declarations(marker string) []*Declaration
	// Resolve resolves a type reference in the context of scope (which may be nil).
	Resolve(ref string, scope *TypeSymbol) *Type
	// BaseType returns the declared base of t with type arguments substituted,
	// or nil at the root of the hierarchy.
	BaseType(t *Type) *Type
	// AttributeClass returns the symbol of an attribute class, or nil when unresolved.
	AttributeClass(name string) *TypeSymbol
}

// DeclarationLister is implemented by oracles that can enumerate every
// attributed declaration regardless of marker.
type DeclarationLister interface {
	AllDeclarations() []*Declaration
}

// Compilation is an Oracle backed by a loaded model file.
// It is immutable after construction.
type Compilation struct {
	types     map[TypeID]*TypeSymbol
	byKeyword map[string]*TypeSymbol
	declared  []*TypeSymbol
	globals   []*Declaration
}

var _ Oracle = (*Compilation)(nil)

var _ DeclarationLister = (*Compilation)(nil)

type builtin struct {
	keyword   string
	namespace string
	name      string
	kind      TypeKind
	params    []string
	base      string
}

var builtins = []builtin{
	{"object", "System", "Object", TypeKindClass, nil, ""},
	{"string", "System", "String", TypeKindClass, nil, ""},
	{"bool", "System", "Boolean", TypeKindStruct, nil, ""},
	{"byte", "System", "Byte", TypeKindStruct, nil, ""},
	{"sbyte", "System", "SByte", TypeKindStruct, nil, ""},
	{"char", "System", "Char", TypeKindStruct, nil, ""},
	{"short", "System", "Int16", TypeKindStruct, nil, ""},
	{"ushort", "System", "UInt16", TypeKindStruct, nil, ""},
	{"int", "System", "Int32", TypeKindStruct, nil, ""},
	{"uint", "System", "UInt32", TypeKindStruct, nil, ""},
	{"long", "System", "Int64", TypeKindStruct, nil, ""},
	{"ulong", "System", "UInt64", TypeKindStruct, nil, ""},
	{"float", "System", "Single", TypeKindStruct, nil, ""},
	{"double", "System", "Double", TypeKindStruct, nil, ""},
	{"decimal", "System", "Decimal", TypeKindStruct, nil, ""},
	{"void", "System", "Void", TypeKindStruct, nil, ""},
	{"", "System", "ValueType", TypeKindClass, nil, ""},
	{"", "System", "Attribute", TypeKindClass, nil, ""},
	{"", "System", "IObservable", TypeKindInterface, []string{"T"}, ""},
	{"", "System.Threading.Tasks", "Task", TypeKindClass, nil, ""},
	{"", "System.Threading.Tasks", "Task", TypeKindClass, []string{"TResult"}, "System.Threading.Tasks.Task"},
	{"", "System.Reactive", "Unit", TypeKindStruct, nil, ""},
}

func newCompilation() *Compilation {
	c := &Compilation{
		types:     make(map[TypeID]*TypeSymbol),
		byKeyword: make(map[string]*TypeSymbol),
	}

	for _, b := range builtins {
		sym := &TypeSymbol{
			ID:             TypeID{Namespace: b.namespace, Name: b.name, Arity: len(b.params)},
			Kind:           b.kind,
			Accessibility:  AccessibilityPublic,
			TypeParameters: b.params,
			Base:           b.base,
			Keyword:        b.keyword,
		}

		c.types[sym.ID] = sym
		if b.keyword != "" {
			c.byKeyword[b.keyword] = sym
		}
	}

	return c
}

// Types returns the model-declared types in source order.
func (c *Compilation) Types() []*TypeSymbol {
	return append([]*TypeSymbol(nil), c.declared...)
}

// Lookup returns the symbol for id, including built-in types.
func (c *Compilation) Lookup(id TypeID) *TypeSymbol {
	return c.types[id]
}

// AllDeclarations returns every member declaration, nested ones first in type
// order, then declarations outside any type.
func (c *Compilation) AllDeclarations() []*Declaration {
	var out []*Declaration
	for _, t := range c.declared {
		out = append(out, t.Members...)
	}

	return append(out, c.globals...)
}

// Declarations implements Oracle.
func (c *Compilation) Declarations(marker string) []*Declaration {
	var out []*Declaration

	for _, d := range c.AllDeclarations() {
		if d.HasAttribute(marker) {
			out = append(out, d)
		}
	}

	return out
}

// Resolve implements Oracle. Unparseable or unknown references yield error
// types; an empty reference yields nil.
func (c *Compilation) Resolve(ref string, scope *TypeSymbol) *Type {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	parsed, err := ParseTypeRef(ref)
	if err != nil {
		return &Type{ID: TypeID{Name: ref}}
	}

	return c.resolveRef(parsed, scope, nil)
}

// BaseType implements Oracle.
func (c *Compilation) BaseType(t *Type) *Type {
	if t == nil || t.Symbol == nil || t.Elem != nil {
		return nil
	}

	sym := t.Symbol

	baseRef := sym.Base
	if baseRef == "" {
		baseRef = implicitBase(sym)
	}

	if baseRef == "" {
		return nil
	}

	parsed, err := ParseTypeRef(baseRef)
	if err != nil {
		return nil
	}

	subst := make(map[string]*Type, len(sym.TypeParameters))
	for i, p := range sym.TypeParameters {
		if i < len(t.Args) {
			subst[p] = t.Args[i]
		}
	}

	return c.resolveRef(parsed, sym, subst)
}

// AttributeClass implements Oracle. The "Attribute" suffix may be omitted.
func (c *Compilation) AttributeClass(name string) *TypeSymbol {
	name = strings.TrimPrefix(strings.TrimSpace(name), common.GlobalPrefix)
	ns, short := common.Namespace(name), common.ShortName(name)

	candidates := []string{short}
	if trimmed := common.TrimAttributeSuffix(short); trimmed != short {
		candidates = append(candidates, trimmed)
	} else {
		candidates = append(candidates, short+"Attribute")
	}

	for _, n := range candidates {
		if sym := c.types[TypeID{Namespace: ns, Name: n}]; sym != nil {
			return sym
		}
	}

	return nil
}

func (c *Compilation) resolveRef(r TypeRef, scope *TypeSymbol, subst map[string]*Type) *Type {
	if r.Array > 0 {
		elem := r
		elem.Array = 0

		t := c.resolveRef(elem, scope, subst)
		for range r.Array {
			t = &Type{Elem: t}
		}

		return t
	}

	if len(r.Args) == 0 && !strings.Contains(r.Name, ".") {
		if s, ok := subst[r.Name]; ok {
			cp := *s
			cp.Nullable = cp.Nullable || r.Nullable

			return &cp
		}

		if scope != nil && scope.IsTypeParameter(r.Name) {
			return &Type{ID: TypeID{Name: r.Name}, TypeParameter: true, Nullable: r.Nullable}
		}

		if sym, ok := c.byKeyword[r.Name]; ok {
			return &Type{Symbol: sym, ID: sym.ID, Nullable: r.Nullable}
		}
	}

	args := make([]*Type, 0, len(r.Args))
	for _, a := range r.Args {
		args = append(args, c.resolveRef(a, scope, subst))
	}

	id := TypeID{
		Namespace: common.Namespace(r.Name),
		Name:      common.ShortName(r.Name),
		Arity:     len(args),
	}

	sym := c.types[id]
	if sym == nil && id.Namespace == "" && scope != nil {
		if scoped := c.types[TypeID{Namespace: scope.Namespace(), Name: id.Name, Arity: id.Arity}]; scoped != nil {
			sym, id = scoped, scoped.ID
		}
	}

	if len(args) == 0 {
		args = nil
	}

	return &Type{Symbol: sym, ID: id, Args: args, Nullable: r.Nullable}
}

var (
	objectID    = TypeID{Namespace: "System", Name: "Object"}
	valueTypeID = TypeID{Namespace: "System", Name: "ValueType"}
)

func implicitBase(sym *TypeSymbol) string {
	switch {
	case sym.ID == objectID:
		return ""
	case sym.ID == valueTypeID:
		return "System.Object"
	case sym.Kind == TypeKindInterface:
		return ""
	case sym.Kind.IsValueType():
		return "System.ValueType"
	case sym.Kind.IsClassLike():
		return "System.Object"
	default:
		return ""
	}
}
