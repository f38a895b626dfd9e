package analyze

// ModelFile is the compilation export consumed by the generator. It is the
// on-disk form of the semantic model; see Compile for how it becomes an Oracle.
type ModelFile struct {
	Version string `yaml:"version,omitempty" toml:"version,omitempty"`
	// Types are declared types with their members, in source order.
	Types []TypeDecl `yaml:"types" toml:"types"`
	// Members are declarations outside any type (top-level functions,
	// declarations in unsupported contexts).
	Members []MemberDecl `yaml:"members,omitempty" toml:"members,omitempty"`
}

// TypeDecl declares one type.
type TypeDecl struct {
	Name           string   `yaml:"name" toml:"name"`
	Namespace      string   `yaml:"namespace,omitempty" toml:"namespace,omitempty"`
	Kind           string   `yaml:"kind" toml:"kind"`
	Accessibility  string   `yaml:"accessibility,omitempty" toml:"accessibility,omitempty"`
	Base           string   `yaml:"base,omitempty" toml:"base,omitempty"`
	TypeParameters []string `yaml:"typeParameters,omitempty" toml:"typeParameters,omitempty"`
	// AttributeUsage lists valid targets for attribute classes ("Field", "Property", "All").
	// Omitted means unrestricted.
	AttributeUsage []string     `yaml:"attributeUsage,omitempty" toml:"attributeUsage,omitempty"`
	Members        []MemberDecl `yaml:"members,omitempty" toml:"members,omitempty"`
}

// MemberDecl declares one member.
type MemberDecl struct {
	Name          string          `yaml:"name" toml:"name"`
	Kind          string          `yaml:"kind" toml:"kind"`
	Type          string          `yaml:"type,omitempty" toml:"type,omitempty"`
	Accessibility string          `yaml:"accessibility,omitempty" toml:"accessibility,omitempty"`
	Parameters    []ParameterDecl `yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	Attributes    []AttributeDecl `yaml:"attributes,omitempty" toml:"attributes,omitempty"`
}

// ParameterDecl declares a method parameter.
type ParameterDecl struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
}

// AttributeDecl is one attribute application.
type AttributeDecl struct {
	// Type is the attribute class metadata name.
	Type string `yaml:"type" toml:"type"`
	// Syntax is the attribute text as written inside the brackets.
	Syntax string `yaml:"syntax,omitempty" toml:"syntax,omitempty"`
	// Target is an explicit target specifier: "field" or "property".
	Target string         `yaml:"target,omitempty" toml:"target,omitempty"`
	Args   []any          `yaml:"args,omitempty" toml:"args,omitempty"`
	Named  map[string]any `yaml:"named,omitempty" toml:"named,omitempty"`
}
