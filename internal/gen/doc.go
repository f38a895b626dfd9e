// Package gen renders C# companion declarations for grouped descriptors.
//
// Generation approach uses text/template plus a whitespace tidy pass, so
// identical groups always render byte-identical text.
//
// Output units:
//   - one partial declaration per owning type and generation family
//   - optional marker attribute definitions
//
// ObservableAsProperty members get a backing field, a helper field, a
// read-only accessor and one wiring statement in the initializer. Command
// members get a command field, an accessor and one creation statement.
package gen
