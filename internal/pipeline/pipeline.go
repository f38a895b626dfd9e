// Package pipeline runs a complete generation pass: discovery, descriptor
// building, grouping and emission for every enabled family.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rxgen/internal/analyze"
	"rxgen/internal/config"
	"rxgen/internal/diagnostic"
	"rxgen/internal/discover"
	"rxgen/internal/forward"
	"rxgen/internal/gen"
	"rxgen/internal/logging"
	"rxgen/internal/plan"
)

// Options configure a generation pass.
type Options struct {
	// Conventions name the runtime types; empty names take their defaults.
	Conventions config.Conventions
	// Families to run; nil runs every family.
	Families []plan.Family
	// GenerateComments enables summary doc comments in generated units.
	GenerateComments bool
	// EmitAttributes adds the marker attribute definitions to the output.
	EmitAttributes bool
	// Concurrency bounds parallel build and emit work; 0 uses GOMAXPROCS.
	Concurrency int
	// Logger receives progress and skip records; nil discards them.
	Logger *slog.Logger
}

// Result is the output of one pass.
type Result struct {
	// Files are the generated units: families in order, groups in first-seen order.
	Files []gen.GeneratedFile
	// Descriptors are every descriptor built, in discovery order.
	Descriptors []*plan.Descriptor
	Diagnostics diagnostic.Diagnostics
}

// Run executes one generation pass against oracle.
//
// The pass is all-or-nothing: on a build-fatal error or cancellation the
// returned Result carries diagnostics but no files or descriptors.
func Run(ctx context.Context, oracle analyze.Oracle, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	conv := opts.Conventions.WithDefaults()
	if err := conv.Validate(); err != nil {
		return nil, fmt.Errorf("invalid conventions: %w", err)
	}

	families := opts.Families
	if families == nil {
		families = plan.Families
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	r := &runner{
		oracle:  oracle,
		conv:    conv,
		builder: plan.NewBuilder(oracle, conv),
		generator: gen.NewGenerator(gen.GeneratorConfig{
			Conventions:      conv,
			GenerateComments: opts.GenerateComments,
			EmitAttributes:   opts.EmitAttributes,
		}),
		limit:  limit,
		logger: logger,
	}

	res := &Result{}
	built := make([][]*plan.Descriptor, len(families))

	for i, family := range families {
		descriptors, err := r.collect(ctx, family, &res.Diagnostics)
		if err != nil {
			return &Result{Diagnostics: res.Diagnostics}, err
		}

		built[i] = descriptors
		res.Descriptors = append(res.Descriptors, descriptors...)
	}

	// Families emit partial declarations of the same types.
	if err := plan.CheckNames(res.Descriptors); err != nil {
		recordGroupErrors(err, &res.Diagnostics)
		return &Result{Diagnostics: res.Diagnostics}, fmt.Errorf("checking generated names: %w", err)
	}

	for i, family := range families {
		files, err := r.render(ctx, family, built[i], &res.Diagnostics)
		if err != nil {
			return &Result{Diagnostics: res.Diagnostics}, err
		}

		res.Files = append(res.Files, files...)
	}

	if err := ctx.Err(); err != nil {
		return &Result{Diagnostics: res.Diagnostics}, err
	}

	r.reportNearMisses(families, &res.Diagnostics)

	attrs, err := r.generator.AttributeFiles()
	if err != nil {
		return &Result{Diagnostics: res.Diagnostics}, err
	}

	res.Files = append(res.Files, attrs...)

	logger.Info("generation complete",
		"files", len(res.Files),
		"descriptors", len(res.Descriptors),
		"warnings", len(res.Diagnostics.Warnings))

	return res, nil
}

type runner struct {
	oracle    analyze.Oracle
	conv      config.Conventions
	builder   *plan.Builder
	generator *gen.Generator
	limit     int
	logger    *slog.Logger
}

// collect discovers and builds the descriptors of one family.
func (r *runner) collect(
	ctx context.Context, family plan.Family, diags *diagnostic.Diagnostics,
) ([]*plan.Descriptor, error) {
	decls := r.oracle.Declarations(family.Marker(r.conv))
	r.logger.Debug("discovered marked declarations", "family", family, "count", len(decls))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markers := r.discover(ctx, family, decls, diags)

	descriptors, err := r.build(ctx, family, markers)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return descriptors, nil
}

// render groups one family's descriptors and emits a unit per group.
func (r *runner) render(
	ctx context.Context, family plan.Family, descriptors []*plan.Descriptor, diags *diagnostic.Diagnostics,
) ([]gen.GeneratedFile, error) {
	groups, err := plan.GroupByTarget(descriptors)
	if err != nil {
		recordGroupErrors(err, diags)
		return nil, fmt.Errorf("grouping %s descriptors: %w", family, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return r.emit(ctx, family, groups)
}

// discover keeps eligible markers and records why the others were skipped.
func (r *runner) discover(
	ctx context.Context, family plan.Family, decls []*analyze.Declaration, diags *diagnostic.Diagnostics,
) []discover.Marker {
	rule := family.Rule(r.conv)
	markers := make([]discover.Marker, 0, len(decls))

	for _, decl := range decls {
		m, outcome := rule.Discover(decl)

		target := ""
		if decl.ContainingType != nil {
			target = decl.ContainingType.FullName()
		}

		switch outcome {
		case discover.OutcomeFound:
			markers = append(markers, m)

			for _, a := range forward.Dropped(r.oracle, m.Others(rule.Marker)) {
				diags.AddInfo(diagnostic.CodeAttributeDropped,
					fmt.Sprintf("attribute %s is not forwarded to generated members", a.ShortName()),
					target, decl.Name)
			}
		case discover.OutcomeIneligible:
			r.logger.Debug("skipping ineligible declaration", "family", family, "type", target, "member", decl.Name)
			diags.AddInfo(diagnostic.CodeShapeIneligible,
				fmt.Sprintf("%s marker ignored on %s declaration", family, decl.Kind), target, decl.Name)
		case discover.OutcomeUnresolved:
			r.logger.Debug("skipping declaration without containing type", "family", family, "member", decl.Name)
			diags.AddInfo(diagnostic.CodeContainerUnresolved,
				fmt.Sprintf("%s marker ignored: containing type is unknown", family), target, decl.Name)
		}

		logging.Trace(ctx, r.logger, "discovered", "family", family, "member", decl.Name, "outcome", outcome)
	}

	return markers
}

// build runs the builder on every marker concurrently. Results keep marker order.
func (r *runner) build(ctx context.Context, family plan.Family, markers []discover.Marker) ([]*plan.Descriptor, error) {
	results := make([]*plan.Descriptor, len(markers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for i, m := range markers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			if d, ok := r.builder.Build(family, m); ok {
				results[i] = d
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	descriptors := make([]*plan.Descriptor, 0, len(results))

	for _, d := range results {
		if d != nil {
			descriptors = append(descriptors, d)
		}
	}

	return descriptors, nil
}

// emit renders every group concurrently into its own slot.
func (r *runner) emit(ctx context.Context, family plan.Family, groups []*plan.Group) ([]gen.GeneratedFile, error) {
	files := make([]gen.GeneratedFile, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for i, group := range groups {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			file, err := r.generator.GenerateGroup(family, group)
			if err != nil {
				return err
			}

			files[i] = file
			r.logger.Debug("rendered unit", "file", file.Filename, "members", group.Len())

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

// reportNearMisses warns about attributes that look like misspelled markers.
// Only oracles that can list every declaration support it.
func (r *runner) reportNearMisses(families []plan.Family, diags *diagnostic.Diagnostics) {
	lister, ok := r.oracle.(analyze.DeclarationLister)
	if !ok {
		return
	}

	markers := make([]string, 0, len(families))
	for _, f := range families {
		markers = append(markers, f.Marker(r.conv))
	}

	for _, decl := range lister.AllDeclarations() {
		target := ""
		if decl.ContainingType != nil {
			target = decl.ContainingType.FullName()
		}

		for _, miss := range discover.NearMisses(decl, markers) {
			diags.AddWarning(diagnostic.CodeNearMissMarker,
				fmt.Sprintf("attribute %s looks like a generation marker", miss.Attribute.ShortName()),
				target, decl.Name, miss.Suggestion)
		}
	}
}

// recordGroupErrors turns grouping failures into error diagnostics.
func recordGroupErrors(err error, diags *diagnostic.Diagnostics) {
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}

	for _, e := range errs {
		var (
			collision    *plan.CollisionError
			inconsistent *plan.InconsistentTargetError
		)

		switch {
		case errors.As(e, &collision):
			diags.AddError(diagnostic.CodeDuplicateMember, e.Error(), collision.Type, collision.Second)
		case errors.As(e, &inconsistent):
			diags.AddError(diagnostic.CodeInconsistentTarget, e.Error(), inconsistent.Type, inconsistent.Member)
		default:
			diags.AddError("", e.Error(), "", "")
		}
	}
}
