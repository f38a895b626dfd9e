package analyze

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a model file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the model format from a file extension. JSON is read
// by the YAML decoder.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}

	return FormatYAML
}

// LoadFile loads a model file and compiles it into a Compilation.
func LoadFile(path string) (*Compilation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	mf, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return Compile(mf)
}

// Parse decodes model data in the given format.
func Parse(data []byte, format Format) (*ModelFile, error) {
	var mf ModelFile

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &mf); err != nil {
			return nil, fmt.Errorf("failed to parse model TOML: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &mf); err != nil {
			return nil, fmt.Errorf("failed to parse model YAML: %w", err)
		}
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *ModelFile) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	for i := range mf.Types {
		t := &mf.Types[i]
		if t.Accessibility == "" {
			t.Accessibility = "internal"
		}

		for j := range t.Members {
			if t.Members[j].Accessibility == "" {
				t.Members[j].Accessibility = "private"
			}
		}
	}

	for i := range mf.Members {
		if mf.Members[i].Accessibility == "" {
			mf.Members[i].Accessibility = "internal"
		}
	}
}

// Compile builds a Compilation from a parsed model. Model types shadow
// built-in types with the same identity.
func Compile(mf *ModelFile) (*Compilation, error) {
	c := newCompilation()
	seen := make(map[TypeID]bool)

	for i := range mf.Types {
		td := &mf.Types[i]

		sym, err := compileType(td)
		if err != nil {
			return nil, err
		}

		if seen[sym.ID] {
			return nil, fmt.Errorf("duplicate type %s", sym.ID)
		}

		seen[sym.ID] = true
		c.types[sym.ID] = sym
		c.declared = append(c.declared, sym)
	}

	for i := range mf.Members {
		d, err := compileMember(&mf.Members[i], nil)
		if err != nil {
			return nil, err
		}

		c.globals = append(c.globals, d)
	}

	return c, nil
}

func compileType(td *TypeDecl) (*TypeSymbol, error) {
	if strings.TrimSpace(td.Name) == "" {
		return nil, fmt.Errorf("type in namespace %q has no name", td.Namespace)
	}

	access, err := ParseAccessibility(td.Accessibility)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", td.Name, err)
	}

	sym := &TypeSymbol{
		ID: TypeID{
			Namespace: strings.TrimSpace(td.Namespace),
			Name:      strings.TrimSpace(td.Name),
			Arity:     len(td.TypeParameters),
		},
		Kind:           ParseTypeKind(td.Kind),
		Accessibility:  access,
		TypeParameters: td.TypeParameters,
		Base:           strings.TrimSpace(td.Base),
	}

	if td.AttributeUsage != nil {
		usage, err := ParseAttributeTargets(td.AttributeUsage)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", sym.ID, err)
		}

		sym.Usage = &usage
	}

	for i := range td.Members {
		d, err := compileMember(&td.Members[i], sym)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", sym.ID, err)
		}

		sym.Members = append(sym.Members, d)
	}

	return sym, nil
}

func compileMember(md *MemberDecl, container *TypeSymbol) (*Declaration, error) {
	if strings.TrimSpace(md.Name) == "" {
		return nil, fmt.Errorf("member of kind %q has no name", md.Kind)
	}

	access, err := ParseAccessibility(md.Accessibility)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", md.Name, err)
	}

	d := &Declaration{
		Name:           strings.TrimSpace(md.Name),
		Kind:           ParseMemberKind(md.Kind),
		Accessibility:  access,
		Type:           strings.TrimSpace(md.Type),
		ContainingType: container,
	}

	if d.Kind == MemberKindMethod && d.Type == "" {
		d.Type = "void"
	}

	for _, p := range md.Parameters {
		d.Parameters = append(d.Parameters, Parameter{Name: p.Name, Type: strings.TrimSpace(p.Type)})
	}

	for _, a := range md.Attributes {
		if strings.TrimSpace(a.Type) == "" {
			return nil, fmt.Errorf("member %s: attribute without type", md.Name)
		}

		target := strings.ToLower(strings.TrimSpace(a.Target))
		if target != "" && target != "field" && target != "property" {
			return nil, fmt.Errorf("member %s: unsupported attribute target %q", md.Name, a.Target)
		}

		d.Attributes = append(d.Attributes, AttributeData{
			Class:  strings.TrimPrefix(strings.TrimSpace(a.Type), "global::"),
			Syntax: strings.TrimSpace(a.Syntax),
			Target: target,
			Args:   a.Args,
			Named:  a.Named,
		})
	}

	return d, nil
}
