package diagnostic

// Suppression tells the host's diagnostic engine that a diagnostic is an
// expected byproduct of a generated code shape.
type Suppression struct {
	ID                   string
	SuppressedDiagnostic string
	Justification        string
}

var suppressions = []Suppression{
	{
		ID:                   "RXUISPR0001",
		SuppressedDiagnostic: "CS0657",
		Justification: "Methods using [ReactiveCommand] can use [field:] and [property:] attribute lists " +
			"to forward attributes to the generated fields and properties",
	},
	{
		ID:                   "RXUISPR0002",
		SuppressedDiagnostic: "IDE0052",
		Justification:        "Fields using [ObservableAsProperty] are never read",
	},
}

// Suppressions returns the suppression table. The returned slice is a copy.
func Suppressions() []Suppression {
	out := make([]Suppression, len(suppressions))
	copy(out, suppressions)

	return out
}

// SuppressionFor returns the entry suppressing the given host diagnostic id.
func SuppressionFor(diagnosticID string) (Suppression, bool) {
	for _, s := range suppressions {
		if s.SuppressedDiagnostic == diagnosticID {
			return s, true
		}
	}

	return Suppression{}, false
}
