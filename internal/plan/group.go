package plan

import (
	"errors"
	"fmt"
	"slices"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Group is the descriptors of one owning type, in first-seen order.
// It is not modified after GroupByTarget returns it.
type Group struct {
	Target      TargetInfo
	descriptors []*Descriptor
}

// Descriptors returns the group's descriptors in declaration order.
func (g *Group) Descriptors() []*Descriptor {
	return slices.Clone(g.descriptors)
}

// Len returns the number of descriptors in the group.
func (g *Group) Len() int {
	return len(g.descriptors)
}

// CollisionError reports two members of one type generating the same name.
type CollisionError struct {
	Type   string
	Name   string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("type %s: members %s and %s both generate %s", e.Type, e.First, e.Second, e.Name)
}

// InconsistentTargetError reports descriptors disagreeing about their owning type.
type InconsistentTargetError struct {
	Type     string
	Member   string
	Property string
	Want     string
	Got      string
}

func (e *InconsistentTargetError) Error() string {
	return fmt.Sprintf("type %s: member %s sees %s %q, expected %q", e.Type, e.Member, e.Property, e.Got, e.Want)
}

// GroupByTarget partitions descriptors by Target.FullName. Groups appear in
// the order their first descriptor appears; descriptors keep input order.
// Every inconsistency or generated-name collision is reported; no groups are
// returned when any is found.
func GroupByTarget(descriptors []*Descriptor) ([]*Group, error) {
	groups := linkedhashmap.New()

	for _, d := range descriptors {
		if d == nil {
			continue
		}

		if v, found := groups.Get(d.Target.FullName); found {
			g := v.(*Group)
			g.descriptors = append(g.descriptors, d)

			continue
		}

		groups.Put(d.Target.FullName, &Group{Target: d.Target, descriptors: []*Descriptor{d}})
	}

	out := make([]*Group, 0, groups.Size())

	var errs []error

	it := groups.Iterator()
	for it.Next() {
		g := it.Value().(*Group)
		errs = append(errs, validateGroup(g)...)
		out = append(out, g)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return out, nil
}

func validateGroup(g *Group) []error {
	var errs []error

	claimed := make(nameClaims)

	for _, d := range g.descriptors {
		check := func(property, want, got string) {
			if want != got {
				errs = append(errs, &InconsistentTargetError{
					Type: g.Target.FullName, Member: d.Member.Name, Property: property, Want: want, Got: got,
				})
			}
		}

		check("visibility", g.Target.Visibility, d.Target.Visibility)
		check("kind", g.Target.Kind, d.Target.Kind)
		check("namespace", g.Target.Namespace, d.Target.Namespace)
		check("type parameter count", fmt.Sprint(len(g.Target.TypeParameters)), fmt.Sprint(len(d.Target.TypeParameters)))

		errs = append(errs, claimed.claim(g.Target.FullName, d)...)
	}

	return errs
}

// CheckNames reports every generated name claimed twice within one owning
// type. Unlike GroupByTarget it spans families, whose partial declarations
// of a type share one member scope.
func CheckNames(descriptors []*Descriptor) error {
	byType := make(map[string]nameClaims)

	var errs []error

	for _, d := range descriptors {
		if d == nil {
			continue
		}

		claimed, ok := byType[d.Target.FullName]
		if !ok {
			claimed = make(nameClaims)
			byType[d.Target.FullName] = claimed
		}

		errs = append(errs, claimed.claim(d.Target.FullName, d)...)
	}

	return errors.Join(errs...)
}

// nameClaims maps a generated name to the source member that generates it.
type nameClaims map[string]string

// claim records d's generated names. A clash with an earlier member is
// reported once per member pair.
func (c nameClaims) claim(typeName string, d *Descriptor) []error {
	var (
		errs     []error
		reported = make(map[string]bool)
	)

	for _, name := range d.GeneratedNames() {
		first, dup := c[name]
		if !dup {
			c[name] = d.Member.Name
			continue
		}

		if !reported[first] {
			reported[first] = true
			errs = append(errs, &CollisionError{Type: typeName, Name: name, First: first, Second: d.Member.Name})
		}
	}

	return errs
}
