// Package analyze is the semantic oracle the generator is built on.
//
// It loads a compilation export (YAML or TOML) describing C# types, members
// and attributes, and answers the questions marker discovery and descriptor
// building need: which declarations carry a marker, what a type reference
// resolves to, what a type's declared base is, and which targets an
// attribute class may be applied to.
//
// Key types:
//   - TypeID: namespace + metadata name + generic arity
//   - TypeSymbol / Declaration: declared types and members
//   - Type: a resolved type reference with substituted type arguments
//   - Compilation: the Oracle implementation backed by a model file
package analyze
