// Package pipeline contains the data model of the CI configuration: a tree
// of projects that contain build types, VCS roots and parameters.
package pipeline

import (
	"errors"
	"slices"
)

// ErrStopWalk can be returned by a WalkFunc to stop the walk without
// returning an error from Walk.
var ErrStopWalk = errors.New("stop walk")

// Project groups build types and child projects.
type Project struct {
	ID          string
	Name        string
	Description string
	Params      Params
	Features    []Feature
	VcsRoots    []VcsRoot
	BuildTypes  []*BuildType
	SubProjects []*Project
}

// NewProject returns an empty project.
func NewProject(id, name, description string) *Project {
	return &Project{
		ID:          id,
		Name:        name,
		Description: description,
		Params:      Params{},
	}
}

func (p *Project) String() string {
	return p.ID
}

// AddSubProject appends sp to the child projects.
// If p already has a child project or build type with the same ID an
// *ErrDuplicateID is returned and p is not modified.
func (p *Project) AddSubProject(sp *Project) error {
	if p.childIDExists(sp.ID) {
		return &ErrDuplicateID{ParentID: p.ID, ID: sp.ID, Kind: "project"}
	}

	p.SubProjects = append(p.SubProjects, sp)

	return nil
}

// AddBuildType appends bt to the build types of p.
// If p already has a child project or build type with the same ID an
// *ErrDuplicateID is returned and p is not modified.
func (p *Project) AddBuildType(bt *BuildType) error {
	if p.childIDExists(bt.ID) {
		return &ErrDuplicateID{ParentID: p.ID, ID: bt.ID, Kind: "build type"}
	}

	p.BuildTypes = append(p.BuildTypes, bt)

	return nil
}

// AddVcsRoot registers a VcsRoot at the project.
func (p *Project) AddVcsRoot(r VcsRoot) error {
	for _, existing := range p.VcsRoots {
		if existing.ID == r.ID {
			return &ErrDuplicateID{ParentID: p.ID, ID: r.ID, Kind: "VCS root"}
		}
	}

	p.VcsRoots = append(p.VcsRoots, r)

	return nil
}

func (p *Project) childIDExists(id string) bool {
	for _, sp := range p.SubProjects {
		if sp.ID == id {
			return true
		}
	}

	for _, bt := range p.BuildTypes {
		if bt.ID == id {
			return true
		}
	}

	return false
}

// WalkFunc is called by Walk for every project. parents contains the chain
// of projects from the root to the parent of p.
type WalkFunc func(p *Project, parents []*Project) error

// Walk calls fn for p and all its descendants in depth-first pre-order.
// Child projects are visited in the order they were added.
// If fn returns ErrStopWalk, the walk is terminated and nil is returned, all
// other errors are returned as is.
func (p *Project) Walk(fn WalkFunc) error {
	err := p.walk(nil, fn)
	if errors.Is(err, ErrStopWalk) {
		return nil
	}

	return err
}

func (p *Project) walk(parents []*Project, fn WalkFunc) error {
	if err := fn(p, parents); err != nil {
		return err
	}

	parents = append(slices.Clip(parents), p)
	for _, sp := range p.SubProjects {
		if err := sp.walk(parents, fn); err != nil {
			return err
		}
	}

	return nil
}

// AllProjects returns p and all its descendant projects in depth-first
// pre-order.
func (p *Project) AllProjects() []*Project {
	var result []*Project

	_ = p.Walk(func(p *Project, _ []*Project) error {
		result = append(result, p)
		return nil
	})

	return result
}

// AllBuildTypes returns the build types of p and of all its descendants.
// The build types of a project are returned before the ones of its child
// projects.
func (p *Project) AllBuildTypes() []*BuildType {
	var result []*BuildType

	_ = p.Walk(func(p *Project, _ []*Project) error {
		result = append(result, p.BuildTypes...)
		return nil
	})

	return result
}

// FindBuildType returns the build type with the given ID in the tree rooted
// at p. If none exists, nil is returned.
func (p *Project) FindBuildType(id string) *BuildType {
	for _, bt := range p.AllBuildTypes() {
		if bt.ID == id {
			return bt
		}
	}

	return nil
}

// FindProject returns the project with the given ID in the tree rooted at p.
// If none exists, nil is returned.
func (p *Project) FindProject(id string) *Project {
	var result *Project

	_ = p.Walk(func(p *Project, _ []*Project) error {
		if p.ID == id {
			result = p
			return ErrStopWalk
		}
		return nil
	})

	return result
}
