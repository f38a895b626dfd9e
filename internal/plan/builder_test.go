package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rxgen/internal/analyze"
	"rxgen/internal/config"
	"rxgen/internal/discover"
)

const viewModel = `
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
          - type: System.NonSerializedAttribute
            syntax: NonSerialized
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty
          - type: System.ComponentModel.BrowsableAttribute
            syntax: Browsable(false)
      - name: Count
        kind: property
        type: System.IObservable<int>
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty(ReadOnly = false, PropertyName = "Total")
            named:
              ReadOnly: false
              PropertyName: Total
      - name: LoadItems
        kind: method
        type: ItemFeed
        parameters:
          - name: filter
            type: System.IObservable<string>
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty
      - name: Lookalike
        kind: property
        type: Other.IObservable<string>
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty
      - name: Loop
        kind: property
        type: Demo.A
        attributes:
          - type: ReactiveUI.SourceGenerators.ObservableAsPropertyAttribute
            syntax: ObservableAsProperty
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
        type: Demo.ItemFeed
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
  - name: Feed
    namespace: Demo
    kind: interface
    typeParameters: [T]
    base: System.IObservable<T>
  - name: ItemFeed
    namespace: Demo
    kind: class
    base: Demo.Feed<Demo.Item>
  - name: Item
    namespace: Demo
    kind: class
  - name: IObservable
    namespace: Other
    kind: interface
    typeParameters: [T]
  - name: A
    namespace: Demo
    kind: class
    base: Demo.B
  - name: B
    namespace: Demo
    kind: class
    base: Demo.A
  - name: NonSerializedAttribute
    namespace: System
    kind: class
    base: System.Attribute
    attributeUsage: [Field]
  - name: BrowsableAttribute
    namespace: System.ComponentModel
    kind: class
    base: System.Attribute
    attributeUsage: [Property, Method, Event]
`

func compile(t testing.TB, model string) *analyze.Compilation {
	t.Helper()

	mf, err := analyze.Parse([]byte(model), analyze.FormatYAML)
	require.NoError(t, err)

	c, err := analyze.Compile(mf)
	require.NoError(t, err)

	return c
}

func declaration(t testing.TB, c *analyze.Compilation, typeName, member string) *analyze.Declaration {
	t.Helper()

	for _, sym := range c.Types() {
		if sym.FullName() != typeName {
			continue
		}

		for _, d := range sym.Members {
			if d.Name == member {
				return d
			}
		}
	}

	require.Failf(t, "declaration not found", "%s.%s", typeName, member)

	return nil
}

func discovered(t testing.TB, c *analyze.Compilation, family Family, member string) discover.Marker {
	t.Helper()

	m, outcome := family.Rule(config.Default()).Discover(declaration(t, c, "Demo.Person", member))
	require.Equal(t, discover.OutcomeFound, outcome)

	return m
}

func TestIsStreamType(t *testing.T) {
	c := compile(t, viewModel)
	stream := config.Default().StreamType

	tests := []struct {
		ref      string
		isStream bool
		elem     string
	}{
		{"System.IObservable<int>", true, "int"},
		{"global::System.IObservable<Demo.Item>?", true, "global::Demo.Item"},
		{"Demo.Feed<string>", true, "string"},
		{"Demo.ItemFeed", true, "global::Demo.Item"},
		{"Other.IObservable<string>", false, ""},
		{"string", false, ""},
		{"Demo.Item", false, ""},
		{"Demo.A", false, ""},
		{"Unknown.Type", false, ""},
		{"System.IObservable<int>[]", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			elem, ok := IsStreamType(c, c.Resolve(tt.ref, nil), stream)
			assert.Equal(t, tt.isStream, ok)

			if tt.isStream {
				require.NotNil(t, elem)
				assert.Equal(t, tt.elem, elem.FullyQualifiedName())
			} else {
				assert.Nil(t, elem)
			}
		})
	}

	elem, ok := IsStreamType(c, nil, stream)
	assert.False(t, ok)
	assert.Nil(t, elem)
}

func TestBuildObservable_Snapshot(t *testing.T) {
	c := compile(t, viewModel)
	b := NewBuilder(c, config.Default())

	d, ok := b.BuildObservable(discovered(t, c, FamilyObservableAsProperty, "Name"))
	require.True(t, ok)

	assert.Equal(t, FamilyObservableAsProperty, d.Family)
	assert.Equal(t, TargetInfo{
		Name:               "Person",
		Namespace:          "Demo",
		FullName:           "Demo.Person",
		FullyQualifiedName: "global::Demo.Person",
		Visibility:         "public",
		Kind:               "class",
		FileHint:           "Demo.Person",
	}, d.Target)
	assert.Equal(t, MemberInfo{Name: "Name", Kind: analyze.MemberKindProperty, PropertyName: "Name"}, d.Member)
	assert.Equal(t, "_name", d.Member.FieldName())
	assert.Equal(t, "string", d.Produced.FullyQualifiedName)
	assert.Equal(t, d.Return, d.Produced)
	assert.Nil(t, d.Argument)
	assert.False(t, d.Shape.ReturnIsStream)
	assert.True(t, d.Options.ReadOnly)
	assert.Nil(t, d.Command)

	assert.Equal(t, []ForwardedAttribute{{Namespace: "System", Syntax: "NonSerialized"}}, d.Forwarded.Field())
	assert.Equal(t, []ForwardedAttribute{{Namespace: "System.ComponentModel", Syntax: "Browsable(false)"}}, d.Forwarded.Property())
}

func TestBuildObservable_StreamProperty(t *testing.T) {
	c := compile(t, viewModel)
	b := NewBuilder(c, config.Default())

	d, ok := b.BuildObservable(discovered(t, c, FamilyObservableAsProperty, "Count"))
	require.True(t, ok)

	assert.True(t, d.Shape.ReturnIsStream)
	assert.Equal(t, "int", d.Produced.FullyQualifiedName)
	assert.Equal(t, "global::System.IObservable<int>", d.Return.FullyQualifiedName)
	assert.False(t, d.Options.ReadOnly)
	assert.Equal(t, "Total", d.Member.PropertyName)
	assert.Equal(t, "_total", d.Member.FieldName())
	assert.True(t, d.Forwarded.IsEmpty())
}

func TestBuildObservable_StreamMethodThroughBaseChain(t *testing.T) {
	c := compile(t, viewModel)
	b := NewBuilder(c, config.Default())

	d, ok := b.BuildObservable(discovered(t, c, FamilyObservableAsProperty, "LoadItems"))
	require.True(t, ok)

	assert.True(t, d.Member.IsMethod())
	assert.True(t, d.Shape.ReturnIsStream)
	assert.Equal(t, "global::Demo.Item", d.Produced.FullyQualifiedName)
	assert.Equal(t, "global::Demo.ItemFeed", d.Return.FullyQualifiedName)

	require.NotNil(t, d.Argument)
	assert.Equal(t, "global::System.IObservable<string>", d.Argument.FullyQualifiedName)
	assert.True(t, d.Shape.ArgumentIsStream)
}

func TestBuildObservable_NotStream(t *testing.T) {
	c := compile(t, viewModel)
	b := NewBuilder(c, config.Default())

	for _, member := range []string{"Lookalike", "Loop"} {
		t.Run(member, func(t *testing.T) {
			d, ok := b.BuildObservable(discovered(t, c, FamilyObservableAsProperty, member))
			require.True(t, ok)
			assert.False(t, d.Shape.ReturnIsStream)
			assert.Equal(t, d.Return, d.Produced)
		})
	}
}

func TestBuildObservable_RequiresContainer(t *testing.T) {
	c := compile(t, viewModel)
	b := NewBuilder(c, config.Default())

	m := discovered(t, c, FamilyObservableAsProperty, "Name")
	m.Container = nil

	d, ok := b.BuildObservable(m)
	assert.False(t, ok)
	assert.Nil(t, d)

	d, ok = b.BuildObservable(discover.Marker{})
	assert.False(t, ok)
	assert.Nil(t, d)
}

func TestBuildCommand(t *testing.T) {
	c := compile(t, viewModel)
	b := NewBuilder(c, config.Default())

	const unit = "global::System.Reactive.Unit"

	tests := []struct {
		member    string
		kind      CommandKind
		result    string
		parameter string
		hasParam  bool
	}{
		{"Save", CommandSync, unit, unit, false},
		{"SaveAsync", CommandTask, unit, unit, false},
		{"Fetch", CommandTask, "string", "int", true},
		{"Watch", CommandObservable, "global::Demo.Item", unit, false},
		{"Compute", CommandSync, "int", "double", true},
	}

	for _, tt := range tests {
		t.Run(tt.member, func(t *testing.T) {
			d, ok := b.BuildCommand(discovered(t, c, FamilyReactiveCommand, tt.member))
			require.True(t, ok)
			require.NotNil(t, d.Command)

			assert.Equal(t, FamilyReactiveCommand, d.Family)
			assert.Equal(t, tt.kind, d.Command.Kind)
			assert.Equal(t, tt.result, d.Command.Result.FullyQualifiedName)
			assert.Equal(t, tt.parameter, d.Command.Parameter.FullyQualifiedName)
			assert.Equal(t, tt.hasParam, d.Command.HasParameter)
			assert.Equal(t, tt.result != unit, d.Command.HasResult)
			assert.Equal(t, d.Command.Result, d.Produced)
			assert.Equal(t, tt.member+"Command", d.Member.PropertyName)
		})
	}

	d, ok := b.BuildCommand(discovered(t, c, FamilyReactiveCommand, "SaveAsync"))
	require.True(t, ok)
	assert.Equal(t, "CanSave", d.Options.CanExecute)
	assert.Equal(t, "_saveAsyncCommand", d.Member.FieldName())
}

func TestBuilder_Build_Dispatch(t *testing.T) {
	c := compile(t, viewModel)
	b := NewBuilder(c, config.Default())

	d, ok := b.Build(FamilyReactiveCommand, discovered(t, c, FamilyReactiveCommand, "Save"))
	require.True(t, ok)
	assert.Equal(t, FamilyReactiveCommand, d.Family)

	_, ok = b.Build(Family(42), discovered(t, c, FamilyReactiveCommand, "Save"))
	assert.False(t, ok)
}

func TestFamily(t *testing.T) {
	conv := config.Default()

	assert.Equal(t, "ObservableAsProperty", FamilyObservableAsProperty.String())
	assert.Equal(t, "ReactiveCommand", FamilyReactiveCommand.String())
	assert.Equal(t, "Family(7)", Family(7).String())

	f, err := ParseFamily("reactivecommand")
	require.NoError(t, err)
	assert.Equal(t, FamilyReactiveCommand, f)

	_, err = ParseFamily("Bindable")
	require.Error(t, err)

	assert.Equal(t, config.ObservableAsPropertyMarker, FamilyObservableAsProperty.Marker(conv))
	assert.Equal(t, config.ReactiveCommandMarker, FamilyReactiveCommand.Marker(conv))
	assert.Equal(t, []analyze.MemberKind{analyze.MemberKindMethod}, FamilyReactiveCommand.Rule(conv).Members)
}

func TestForwarded_IsImmutable(t *testing.T) {
	field := []ForwardedAttribute{{Namespace: "System", Syntax: "NonSerialized"}}
	f := NewForwarded(field, nil)

	field[0].Syntax = "Changed"
	assert.Equal(t, "NonSerialized", f.Field()[0].Syntax)

	got := f.Field()
	got[0].Syntax = "Changed"
	assert.Equal(t, "NonSerialized", f.Field()[0].Syntax)
	assert.Empty(t, f.Property())
}
