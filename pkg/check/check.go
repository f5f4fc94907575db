// Package check verifies structural properties of a project tree.
package check

import (
	"errors"
	"fmt"
	"slices"

	"github.com/simplesurance/ciconf/internal/set"
	"github.com/simplesurance/ciconf/internal/validation"
	"github.com/simplesurance/ciconf/pkg/pipeline"
)

// ViolationError describes an element of the project tree that violates a
// check.
type ViolationError struct {
	Check string
	// ID is the identifier of the offending element.
	ID  string
	Msg string
}

func (e *ViolationError) Error() string {
	return e.Msg
}

func newViolation(check, id, format string, a ...any) *ViolationError {
	return &ViolationError{
		Check: check,
		ID:    id,
		Msg:   fmt.Sprintf(format, a...),
	}
}

// Func is the signature of a check.
type Func func(root *pipeline.Project) error

// Named associates a check with its name.
type Named struct {
	Name string
	Fn   Func
}

// Checks returns all checks in the order All runs them.
func Checks() []Named {
	return []Named{
		{Name: "clean-checkout", Fn: CleanCheckout},
		{Name: "unique-ids", Fn: UniqueIDs},
		{Name: "valid-ids", Fn: ValidIDs},
		{Name: "vcs-roots-registered", Fn: VCSRootsRegistered},
		{Name: "dependencies-resolvable", Fn: DependenciesResolvable},
	}
}

// CleanCheckout returns a *ViolationError for the first build type in the
// tree that does not use a clean checkout. Build types are visited depth
// first, the build types of a project before the ones of its subprojects.
func CleanCheckout(root *pipeline.Project) error {
	for _, bt := range root.AllBuildTypes() {
		if !bt.VCS.CleanCheckout {
			return newViolation("clean-checkout", bt.ID, "Build '%s' doesn't use clean checkout", bt.ID)
		}
	}

	return nil
}

// UniqueIDs returns an error when an ID is used by more than one project,
// build type or VCS root of the tree.
func UniqueIDs(root *pipeline.Project) error {
	seen := map[string]string{}
	var errs []error

	record := func(kind, id, parentID string) {
		if prevParent, exists := seen[id]; exists {
			errs = append(errs, newViolation(
				"unique-ids", id,
				"%s ID %q in project %q is already used by an element in project %q",
				kind, id, parentID, prevParent,
			))
			return
		}
		seen[id] = parentID
	}

	_ = root.Walk(func(p *pipeline.Project, parents []*pipeline.Project) error {
		parentID := ""
		if len(parents) > 0 {
			parentID = parents[len(parents)-1].ID
		}
		record("project", p.ID, parentID)

		for _, r := range p.VcsRoots {
			record("VCS root", r.ID, p.ID)
		}

		for _, bt := range p.BuildTypes {
			record("build type", bt.ID, p.ID)
		}

		return nil
	})

	return errors.Join(errs...)
}

// ValidIDs returns an error for every ID in the tree that is not accepted
// by pipeline.ValidateID and for every project or build type with an empty
// or malformed name.
func ValidIDs(root *pipeline.Project) error {
	var errs []error

	validate := func(kind, id string) {
		if err := pipeline.ValidateID(id); err != nil {
			errs = append(errs, newViolation("valid-ids", id, "%s ID %q is invalid: %s", kind, id, err))
		}
	}

	validateName := func(kind, id, name string) {
		if err := validation.DisplayName(name); err != nil {
			errs = append(errs, newViolation("valid-ids", id, "name of %s %q is invalid: %s", kind, id, err))
		}
	}

	_ = root.Walk(func(p *pipeline.Project, _ []*pipeline.Project) error {
		validate("project", p.ID)
		validateName("project", p.ID, p.Name)

		for _, r := range p.VcsRoots {
			validate("VCS root", r.ID)
		}

		for _, bt := range p.BuildTypes {
			validate("build type", bt.ID)
			validateName("build type", bt.ID, bt.Name)
		}

		return nil
	})

	return errors.Join(errs...)
}

// VCSRootsRegistered returns an error for every build type that references
// a VCS root that is not registered in the project of the build type or in
// one of its ancestors.
func VCSRootsRegistered(root *pipeline.Project) error {
	var errs []error

	_ = root.Walk(func(p *pipeline.Project, parents []*pipeline.Project) error {
		visible := set.Set[string]{}
		for _, ancestor := range append(slices.Clip(parents), p) {
			for _, r := range ancestor.VcsRoots {
				visible.Add(r.ID)
			}
		}

		for _, bt := range p.BuildTypes {
			if !visible.Contains(bt.VCS.Root) {
				errs = append(errs, newViolation(
					"vcs-roots-registered", bt.ID,
					"build type %q references VCS root %q that is not registered",
					bt.ID, bt.VCS.Root,
				))
			}
		}

		return nil
	})

	return errors.Join(errs...)
}

// DependenciesResolvable returns an error for every snapshot dependency
// that references a build type that does not exist in the tree.
func DependenciesResolvable(root *pipeline.Project) error {
	var errs []error

	buildTypes := root.AllBuildTypes()
	ids := make(set.Set[string], len(buildTypes))
	for _, bt := range buildTypes {
		ids.Add(bt.ID)
	}

	for _, bt := range buildTypes {
		for _, dep := range bt.Dependencies {
			if !ids.Contains(dep.BuildTypeID) {
				errs = append(errs, newViolation(
					"dependencies-resolvable", bt.ID,
					"build type %q depends on non-existing build type %q",
					bt.ID, dep.BuildTypeID,
				))
			}
		}
	}

	return errors.Join(errs...)
}

type Logger interface {
	Debugf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}

// All runs all checks and returns their joined errors.
func All(root *pipeline.Project) error {
	return Run(root, nopLogger{}, Checks()...)
}

// Run runs the passed checks on the tree and returns their joined errors.
func Run(root *pipeline.Project, logger Logger, checks ...Named) error {
	var errs []error

	for _, c := range checks {
		err := c.Fn(root)
		if err != nil {
			logger.Debugf("check: %s: failed", c.Name)
			errs = append(errs, err)
			continue
		}

		logger.Debugf("check: %s: passed", c.Name)
	}

	return errors.Join(errs...)
}
