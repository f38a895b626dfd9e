package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"rxgen/internal/diagnostic"
)

// Suppressions lists the diagnostic suppressions consumers can register.
type Suppressions struct {
	Stdout io.Writer `kong:"-"`
}

// Run is called by Kong when the suppressions command is executed.
func (s *Suppressions) Run() error {
	tw := tabwriter.NewWriter(stdout(s.Stdout), 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tSUPPRESSES\tJUSTIFICATION")

	for _, sup := range diagnostic.Suppressions() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", sup.ID, sup.SuppressedDiagnostic, sup.Justification)
	}

	return tw.Flush()
}
