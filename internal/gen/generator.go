package gen

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"rxgen/internal/common"
	"rxgen/internal/config"
	"rxgen/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Conventions name the runtime types generated code binds to.
	Conventions config.Conventions
	// GenerateComments enables generation of summary doc comments.
	GenerateComments bool
	// EmitAttributes adds the marker attribute definitions to the output.
	EmitAttributes bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Conventions:      config.Default(),
		GenerateComments: true,
	}
}

// Generator renders groups into C# source units. It keeps no state between
// calls and may be shared between goroutines.
type Generator struct {
	config GeneratorConfig
	conv   config.Conventions
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{config: cfg, conv: cfg.Conventions.WithDefaults()}
}

// GeneratedFile represents a generated C# source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "Demo.Person.ObservableAsProperty.g.cs").
	Filename string
	// Content is the tidied source text.
	Content []byte
}

// Filename returns the output name for a group of the given family.
func Filename(hint string, family plan.Family) string {
	return hint + "." + family.String() + ".g.cs"
}

// GenerateGroup renders the companion unit of one group.
func (g *Generator) GenerateGroup(family plan.Family, group *plan.Group) (GeneratedFile, error) {
	if group == nil || group.Len() == 0 {
		return GeneratedFile{}, fmt.Errorf("generating %s: empty group", family)
	}

	data := g.buildUnitData(family, group)

	var body bytes.Buffer
	if err := typeTemplate.Execute(&body, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing template for %s: %w", group.Target.FullName, err)
	}

	var buf bytes.Buffer
	if err := headerTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing header for %s: %w", group.Target.FullName, err)
	}

	if data.Namespace == "" {
		buf.Write(body.Bytes())
	} else {
		fmt.Fprintf(&buf, "namespace %s\n{\n", data.Namespace)
		buf.WriteString(indent(body.String(), "    "))
		buf.WriteString("}\n")
	}

	return GeneratedFile{
		Filename: Filename(group.Target.FileHint, family),
		Content:  tidy(buf.Bytes()),
	}, nil
}

// Generate renders every group in order.
func (g *Generator) Generate(family plan.Family, groups []*plan.Group) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(groups))

	for _, group := range groups {
		file, err := g.GenerateGroup(family, group)
		if err != nil {
			return nil, err
		}

		files = append(files, file)
	}

	return files, nil
}

// AttributeFiles renders the marker attribute definitions when enabled.
func (g *Generator) AttributeFiles() ([]GeneratedFile, error) {
	if !g.config.EmitAttributes {
		return nil, nil
	}

	defs := []attributeDefinition{
		{
			Marker:  g.conv.PropertyMarker,
			Summary: "Generates a read-only property backed by an ObservableAsPropertyHelper.",
			Targets: "Property | global::System.AttributeTargets.Method",
			Options: []string{
				"public bool ReadOnly { get; init; } = true;",
				"public string? PropertyName { get; init; }",
			},
		},
		{
			Marker:  g.conv.CommandMarker,
			Summary: "Generates a ReactiveCommand property for the method.",
			Targets: "Method",
			Options: []string{
				"public string? CanExecute { get; init; }",
				"public string? PropertyName { get; init; }",
			},
		},
	}

	files := make([]GeneratedFile, 0, len(defs))

	for _, def := range defs {
		def.Namespace = common.Namespace(def.Marker)
		def.Name = common.ShortName(def.Marker)

		var buf bytes.Buffer
		if err := attributeTemplate.Execute(&buf, def); err != nil {
			return nil, fmt.Errorf("executing attribute template for %s: %w", def.Name, err)
		}

		files = append(files, GeneratedFile{Filename: def.Name + ".g.cs", Content: tidy(buf.Bytes())})
	}

	return files, nil
}

type attributeDefinition struct {
	Marker    string
	Namespace string
	Name      string
	Summary   string
	Targets   string
	Options   []string
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			lines[i] = prefix + l
		}
	}

	return strings.Join(lines, "")
}

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// tidy strips trailing whitespace, collapses runs of blank lines and ends the
// text with exactly one newline.
func tidy(src []byte) []byte {
	out := trailingSpace.ReplaceAll(src, []byte("\n"))
	out = blankRuns.ReplaceAll(out, []byte("\n\n"))
	out = bytes.TrimLeft(out, "\n")
	out = bytes.TrimRight(out, "\n")

	return append(out, '\n')
}

var headerTemplate = template.Must(template.New("header").Parse(`// <auto-generated/>
#pragma warning disable
#nullable enable

{{range .Usings}}using {{.}};
{{end}}
`))

var typeTemplate = template.Must(template.New("type").Parse(`{{if .GenerateComments}}/// <summary>
/// Partial {{.Kind}} for {{.Name}} which {{.Summary}}.
/// </summary>
{{end}}{{.Visibility}} partial {{.Kind}} {{.Name}}
{
{{range .Members}}{{if $.GenerateComments}}    // Generated from {{.Source}}.
{{end}}{{range .FieldAttributes}}    {{.}}
{{end}}{{range .Fields}}    {{.}}
{{end}}
{{range .PropertyAttributes}}    {{.}}
{{end}}    {{.Property}}

{{end}}    protected void {{.Initializer}}()
    {
{{range .Statements}}        {{.}}
{{end}}    }
}
`))

var attributeTemplate = template.Must(template.New("attribute").Parse(`// <auto-generated/>
#pragma warning disable
#nullable enable

{{if .Namespace}}namespace {{.Namespace}};

{{end}}/// <summary>
/// {{.Summary}}
/// </summary>
[global::System.AttributeUsage(global::System.AttributeTargets.{{.Targets}}, AllowMultiple = false, Inherited = false)]
internal sealed class {{.Name}} : global::System.Attribute
{
    public {{.Name}}()
    {
    }

    public {{.Name}}(string baseType) => BaseType = baseType;

    public string? BaseType { get; }

{{range .Options}}    {{.}}
{{end}}}
`))
