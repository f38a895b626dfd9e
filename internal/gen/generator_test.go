package gen

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"rxgen/internal/analyze"
	"rxgen/internal/config"
	"rxgen/internal/plan"
)

// testingT is satisfied by both *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

func compile(t testingT, model string) *analyze.Compilation {
	t.Helper()

	mf, err := analyze.Parse([]byte(model), analyze.FormatYAML)
	require.NoError(t, err)

	c, err := analyze.Compile(mf)
	require.NoError(t, err)

	return c
}

// groupsFor runs discovery, building and grouping for one family.
func groupsFor(t testingT, c *analyze.Compilation, family plan.Family) []*plan.Group {
	t.Helper()

	conv := config.Default()
	rule := family.Rule(conv)
	b := plan.NewBuilder(c, conv)

	var descriptors []*plan.Descriptor

	for _, decl := range c.Declarations(family.Marker(conv)) {
		m, _ := rule.Discover(decl)
		if m.Declaration == nil {
			continue
		}

		if d, ok := b.Build(family, m); ok {
			descriptors = append(descriptors, d)
		}
	}

	groups, err := plan.GroupByTarget(descriptors)
	require.NoError(t, err)

	return groups
}

const personModel = `
types:
  - name: Person
    namespace: Demo
    kind: class
    accessibility: public
    members:
      - name: Name
        kind: property
        type: string
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty
`

func TestGenerateGroup_RoundTrip(t *testing.T) {
	c := compile(t, personModel)
	groups := groupsFor(t, c, plan.FamilyObservableAsProperty)
	require.Len(t, groups, 1)

	file, err := NewGenerator(DefaultGeneratorConfig()).GenerateGroup(plan.FamilyObservableAsProperty, groups[0])
	require.NoError(t, err)

	assert.Equal(t, "Demo.Person.ObservableAsProperty.g.cs", file.Filename)

	want := `// <auto-generated/>
#pragma warning disable
#nullable enable

using ReactiveUI;

namespace Demo
{
    /// <summary>
    /// Partial class for Person which contains ReactiveUI ObservableAsPropertyHelper properties.
    /// </summary>
    public partial class Person
    {
        // Generated from Name.
        private readonly string _name;
        private global::ReactiveUI.ObservableAsPropertyHelper<string>? _nameHelper;

        public string Name => _nameHelper?.Value ?? _name;

        protected void InitializeOAPH()
        {
            _nameHelper = global::System.Reactive.Linq.Observable.Return(Name).ToProperty(this, nameof(Name));
        }
    }
}
`
	assert.Equal(t, want, string(file.Content))
}

const twoMemberModel = `
types:
  - name: Dashboard
    kind: record
    accessibility: internal
    typeParameters: [T]
    members:
      - name: Items
        kind: method
        type: System.IObservable<T>
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty(ReadOnly = false)
            named:
              ReadOnly: false
      - name: Status
        kind: property
        type: System.IObservable<string>
        attributes:
          - type: System.Text.Json.Serialization.JsonIgnoreAttribute
            syntax: JsonIgnore
            target: property
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty(PropertyName = "Headline")
            named:
              PropertyName: Headline
          - type: NotForwardedAttribute
            syntax: NotForwarded
      - name: Count
        kind: method
        type: int
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty
  - name: JsonIgnoreAttribute
    namespace: System.Text.Json.Serialization
    kind: class
    attributeUsage: [Field, Property]
`

func TestGenerateGroup_MembersInDeclarationOrder(t *testing.T) {
	c := compile(t, twoMemberModel)
	groups := groupsFor(t, c, plan.FamilyObservableAsProperty)
	require.Len(t, groups, 1)

	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	file, err := NewGenerator(cfg).GenerateGroup(plan.FamilyObservableAsProperty, groups[0])
	require.NoError(t, err)

	text := string(file.Content)
	assert.Equal(t, "Dashboard.ObservableAsProperty.g.cs", file.Filename)
	assert.NotContains(t, text, "namespace ")
	assert.NotContains(t, text, "/// <summary>")
	assert.Contains(t, text, "\ninternal partial record Dashboard<T>\n{\n")
	assert.Equal(t, 1, strings.Count(text, "protected void InitializeOAPH()"))

	assert.Contains(t, text, "    private T _items;\n")
	assert.Contains(t, text, "    private global::ReactiveUI.ObservableAsPropertyHelper<T>? _itemsHelper;\n")
	assert.Contains(t, text, "    public T Items => _itemsHelper?.Value ?? _items;\n")
	assert.Contains(t, text, "    [System.Text.Json.Serialization.JsonIgnore]\n    public string Headline => _headlineHelper?.Value ?? _headline;\n")
	assert.Contains(t, text, "    private readonly string _headline;\n")
	assert.NotContains(t, text, "NotForwarded")

	statements := []string{
		"        _itemsHelper = Items()!.ToProperty(this, nameof(Items));",
		"        _headlineHelper = Status!.ToProperty(this, nameof(Headline));",
		"        _countHelper = global::System.Reactive.Linq.Observable.Return(Count()).ToProperty(this, nameof(Count));",
	}

	last := -1
	for _, s := range statements {
		idx := strings.Index(text, s+"\n")
		require.GreaterOrEqual(t, idx, 0, "missing statement %q in\n%s", s, text)
		assert.Greater(t, idx, last, "statement %q out of order", s)
		last = idx
	}
}

const commandModel = `
types:
  - name: Editor
    namespace: Demo
    kind: class
    accessibility: public
    members:
      - name: Save
        kind: method
        attributes:
          - type: ReactiveUI.SourceGenerators.ReactiveCommandAttribute
            syntax: ReactiveCommand
      - name: SaveAsync
        kind: method
        type: System.Threading.Tasks.Task
        attributes:
          - type: ReactiveUI.SourceGenerators.ReactiveCommandAttribute
            syntax: ReactiveCommand(CanExecute = nameof(CanSave))
            named:
              CanExecute: CanSave
      - name: Fetch
        kind: method
        type: System.Threading.Tasks.Task<string>
        parameters:
          - name: id
            type: int
        attributes:
          - type: ReactiveUI.SourceGenerators.ReactiveCommandAttribute
            syntax: ReactiveCommand
      - name: Watch
        kind: method
        type: System.IObservable<Demo.Item>
        attributes:
          - type: ReactiveUI.SourceGenerators.ReactiveCommandAttribute
            syntax: ReactiveCommand
      - name: Compute
        kind: method
        type: int
        parameters:
          - name: value
            type: double
        attributes:
          - type: ReactiveUI.SourceGenerators.ReactiveCommandAttribute
            syntax: ReactiveCommand
      - name: Log
        kind: method
        parameters:
          - name: message
            type: string
        attributes:
          - type: ReactiveUI.SourceGenerators.ReactiveCommandAttribute
            syntax: ReactiveCommand
  - name: Item
    namespace: Demo
    kind: class
`

func TestGenerateGroup_Commands(t *testing.T) {
	c := compile(t, commandModel)
	groups := groupsFor(t, c, plan.FamilyReactiveCommand)
	require.Len(t, groups, 1)

	file, err := NewGenerator(DefaultGeneratorConfig()).GenerateGroup(plan.FamilyReactiveCommand, groups[0])
	require.NoError(t, err)

	text := string(file.Content)
	assert.Equal(t, "Demo.Editor.ReactiveCommand.g.cs", file.Filename)
	assert.Contains(t, text, "protected void InitializeCommands()")

	const unit = "global::System.Reactive.Unit"

	for _, want := range []string{
		"private global::ReactiveUI.ReactiveCommand<" + unit + ", " + unit + ">? _saveCommand;",
		"public global::ReactiveUI.ReactiveCommand<" + unit + ", " + unit + "> SaveCommand => _saveCommand!;",
		"public global::ReactiveUI.ReactiveCommand<int, string> FetchCommand => _fetchCommand!;",
		"_saveCommand = global::ReactiveUI.ReactiveCommand.Create(Save);",
		"_saveAsyncCommand = global::ReactiveUI.ReactiveCommand.CreateFromTask(SaveAsync, CanSave);",
		"_fetchCommand = global::ReactiveUI.ReactiveCommand.CreateFromTask<int, string>(Fetch);",
		"_watchCommand = global::ReactiveUI.ReactiveCommand.CreateFromObservable<global::Demo.Item>(Watch);",
		"_computeCommand = global::ReactiveUI.ReactiveCommand.Create<double, int>(Compute);",
		"_logCommand = global::ReactiveUI.ReactiveCommand.Create<string>(Log);",
	} {
		assert.Contains(t, text, want)
	}
}

func TestGenerateGroup_Empty(t *testing.T) {
	_, err := NewGenerator(DefaultGeneratorConfig()).GenerateGroup(plan.FamilyObservableAsProperty, nil)
	require.Error(t, err)
}

func TestGenerate_OneFilePerGroup(t *testing.T) {
	c := compile(t, personModel+`
  - name: Order
    namespace: Demo.Sales
    kind: class
    accessibility: public
    members:
      - name: Total
        kind: property
        type: decimal
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty
`)
	groups := groupsFor(t, c, plan.FamilyObservableAsProperty)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(plan.FamilyObservableAsProperty, groups)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Demo.Person.ObservableAsProperty.g.cs", files[0].Filename)
	assert.Equal(t, "Demo.Sales.Order.ObservableAsProperty.g.cs", files[1].Filename)
	assert.Contains(t, string(files[1].Content), "namespace Demo.Sales\n")
}

func TestAttributeFiles(t *testing.T) {
	files, err := NewGenerator(DefaultGeneratorConfig()).AttributeFiles()
	require.NoError(t, err)
	assert.Empty(t, files)

	cfg := DefaultGeneratorConfig()
	cfg.EmitAttributes = true

	files, err = NewGenerator(cfg).AttributeFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "ObservableAsPropertyAttribute.g.cs", files[0].Filename)
	assert.Contains(t, string(files[0].Content), "namespace ReactiveUI.SourceGenerators;")
	assert.Contains(t, string(files[0].Content), "internal sealed class ObservableAsPropertyAttribute : global::System.Attribute")
	assert.Contains(t, string(files[0].Content), "public bool ReadOnly { get; init; } = true;")

	assert.Equal(t, "ReactiveCommandAttribute.g.cs", files[1].Filename)
	assert.Contains(t, string(files[1].Content), "global::System.AttributeTargets.Method,")
	assert.Contains(t, string(files[1].Content), "public string? CanExecute { get; init; }")
}

func TestTidy(t *testing.T) {
	assert.Equal(t, "a\n\nb\n", string(tidy([]byte("\n\na  \n\n\n\nb\t\n\n"))))
}

// Rendering the same group twice, with the same or a fresh generator, gives
// byte-identical output.
func TestGenerateGroup_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "members")
		types := []string{"string", "int", "System.IObservable<int>", "System.IObservable<Demo.Item>", "Demo.Item"}

		var sb strings.Builder
		sb.WriteString("types:\n  - name: Host\n    namespace: Demo\n    kind: class\n    members:\n")

		for i := 0; i < n; i++ {
			kind := rapid.SampledFrom([]string{"property", "method"}).Draw(t, "kind")
			typ := rapid.SampledFrom(types).Draw(t, "type")
			fmt.Fprintf(&sb, "      - name: Member%d\n        kind: %s\n        type: %s\n", i, kind, typ)
			sb.WriteString("        attributes:\n          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute\n            syntax: ObservableAsProperty\n")
		}

		sb.WriteString("  - name: Item\n    namespace: Demo\n    kind: class\n")

		c := compile(t, sb.String())
		groups := groupsFor(t, c, plan.FamilyObservableAsProperty)

		if len(groups) != 1 || groups[0].Len() != n {
			t.Fatalf("expected one group of %d, got %d groups", n, len(groups))
		}

		g := NewGenerator(DefaultGeneratorConfig())

		first, err := g.GenerateGroup(plan.FamilyObservableAsProperty, groups[0])
		if err != nil {
			t.Fatal(err)
		}

		second, err := NewGenerator(DefaultGeneratorConfig()).GenerateGroup(plan.FamilyObservableAsProperty, groupsFor(t, c, plan.FamilyObservableAsProperty)[0])
		if err != nil {
			t.Fatal(err)
		}

		if string(first.Content) != string(second.Content) {
			t.Fatalf("non-deterministic output:\n%s\n---\n%s", first.Content, second.Content)
		}
	})
}
