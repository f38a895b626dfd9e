package gen

import (
	"strings"

	"rxgen/internal/common"
	"rxgen/internal/plan"
)

// unitData holds everything the unit template needs for one owning type.
type unitData struct {
	Usings           []string
	Namespace        string
	GenerateComments bool
	Summary          string
	Visibility       string
	Kind             string
	Name             string
	Members          []memberData
	Initializer      string
	Statements       []string
}

// memberData is one generated member.
type memberData struct {
	FieldAttributes    []string
	PropertyAttributes []string
	// Fields are the complete field declarations, in order.
	Fields []string
	// Property is the complete property declaration.
	Property string
	// Source is the marked member, used in comments.
	Source string
}

// buildUnitData constructs the template data for one group.
func (g *Generator) buildUnitData(family plan.Family, group *plan.Group) *unitData {
	t := group.Target
	data := &unitData{
		Usings:           []string{"ReactiveUI"},
		Namespace:        t.Namespace,
		GenerateComments: g.config.GenerateComments,
		Visibility:       t.Visibility,
		Kind:             t.Kind,
		Name:             declarationName(t),
	}

	switch family {
	case plan.FamilyReactiveCommand:
		data.Summary = "contains ReactiveUI ReactiveCommand properties"
		data.Initializer = g.conv.CommandInitializer
	default:
		data.Summary = "contains ReactiveUI ObservableAsPropertyHelper properties"
		data.Initializer = g.conv.PropertyInitializer
	}

	for _, d := range group.Descriptors() {
		member := memberData{
			FieldAttributes:    renderAttributes(d.Forwarded.Field()),
			PropertyAttributes: renderAttributes(d.Forwarded.Property()),
			Source:             d.Member.Name,
		}

		if family == plan.FamilyReactiveCommand {
			g.commandMember(d, &member)
			data.Statements = append(data.Statements, g.commandStatement(d))
		} else {
			g.observableMember(d, &member)
			data.Statements = append(data.Statements, g.observableStatement(d))
		}

		data.Members = append(data.Members, member)
	}

	return data
}

// declarationName renders the type name with its type parameters.
func declarationName(t plan.TargetInfo) string {
	if len(t.TypeParameters) == 0 {
		return t.Name
	}

	return t.Name + "<" + strings.Join(t.TypeParameters, ", ") + ">"
}

func renderAttributes(attrs []plan.ForwardedAttribute) []string {
	out := make([]string, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, a.String())
	}

	return out
}

// global qualifies a conventions name for use in generated code.
func global(name string) string {
	return common.GlobalPrefix + strings.TrimPrefix(name, common.GlobalPrefix)
}

func helperField(d *plan.Descriptor) string {
	return d.Member.HelperFieldName()
}

func (g *Generator) observableMember(d *plan.Descriptor, m *memberData) {
	typ := d.Produced.FullyQualifiedName
	field := d.Member.FieldName()

	readonly := ""
	if d.Options.ReadOnly {
		readonly = "readonly "
	}

	m.Fields = []string{
		"private " + readonly + typ + " " + field + ";",
		"private " + global(g.conv.HelperType) + "<" + typ + ">? " + helperField(d) + ";",
	}
	m.Property = "public " + typ + " " + d.Member.PropertyName + " => " + helperField(d) + "?.Value ?? " + field + ";"
}

// observableStatement wires one helper. Stream sources are used directly;
// snapshot sources are lifted into a single-value stream first.
func (g *Generator) observableStatement(d *plan.Descriptor) string {
	source := d.Member.Name
	if d.Member.IsMethod() {
		source += "()"
	}

	if d.Shape.ReturnIsStream {
		source += "!"
	} else {
		source = global(g.conv.SnapshotSource) + "(" + source + ")"
	}

	return helperField(d) + " = " + source + "." + g.conv.ToPropertyMethod +
		"(this, nameof(" + d.Member.PropertyName + "));"
}

func commandTypeName(g *Generator, c *plan.CommandShape) string {
	return global(g.conv.CommandType) + "<" + c.Parameter.FullyQualifiedName + ", " + c.Result.FullyQualifiedName + ">"
}

func (g *Generator) commandMember(d *plan.Descriptor, m *memberData) {
	typ := commandTypeName(g, d.Command)
	field := d.Member.FieldName()

	m.Fields = []string{"private " + typ + "? " + field + ";"}
	m.Property = "public " + typ + " " + d.Member.PropertyName + " => " + field + "!;"
}

// commandStatement creates one command with the factory matching its kind.
// Type arguments name the parameter and result, skipping Unit stand-ins
// except for observable commands, whose factories always take the result.
func (g *Generator) commandStatement(d *plan.Descriptor) string {
	c := d.Command

	factory := "Create"

	switch c.Kind {
	case plan.CommandTask:
		factory = "CreateFromTask"
	case plan.CommandObservable:
		factory = "CreateFromObservable"
	}

	var typeArgs []string
	if c.HasParameter {
		typeArgs = append(typeArgs, c.Parameter.FullyQualifiedName)
	}

	if c.HasResult || c.Kind == plan.CommandObservable {
		typeArgs = append(typeArgs, c.Result.FullyQualifiedName)
	}

	var sb strings.Builder

	sb.WriteString(d.Member.FieldName())
	sb.WriteString(" = ")
	sb.WriteString(global(g.conv.CommandType))
	sb.WriteByte('.')
	sb.WriteString(factory)

	if len(typeArgs) > 0 {
		sb.WriteString("<" + strings.Join(typeArgs, ", ") + ">")
	}

	sb.WriteString("(" + d.Member.Name)

	if d.Options.CanExecute != "" {
		sb.WriteString(", " + d.Options.CanExecute)
	}

	sb.WriteString(");")

	return sb.String()
}
