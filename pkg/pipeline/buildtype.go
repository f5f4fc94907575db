package pipeline

import (
	"github.com/google/uuid"
)

// uuidNamespace is the namespace for the name-based UUIDs of build types.
var uuidNamespace = uuid.MustParse("7d4f2b6e-93c1-4a8e-b0f5-2c6a1d9e8b34")

// VCSSettings describes how the sources of a VcsRoot are checked out for a
// build.
type VCSSettings struct {
	// Root is the ID of the VcsRoot.
	Root string
	// CleanCheckout causes all files in the checkout directory to be
	// removed before the sources are checked out.
	CleanCheckout bool
	CheckoutDir   string
}

// Step is a script that is executed as part of a build.
type Step struct {
	Name       string
	Script     string
	WorkingDir string
}

// ScheduleTrigger starts a build periodically.
type ScheduleTrigger struct {
	Hour         int
	Minute       int
	Timezone     string
	DaysOfWeek   string
	DaysOfMonth  string
	BranchFilter string
	// WithPendingChangesOnly only triggers a build when the VCS root
	// contains changes since the last build.
	WithPendingChangesOnly bool
}

// Dependency is a snapshot dependency on another build type.
type Dependency struct {
	BuildTypeID string
	// RunOnFailure starts the dependent build even if the dependency
	// failed.
	RunOnFailure bool
}

// Feature is a build or project feature of the CI server, like a shared
// resource definition or a build lock.
type Feature struct {
	Type   string
	Params map[string]string
}

// FailureConditions define when a build is marked as failed.
type FailureConditions struct {
	ErrorMessage        bool
	ExecutionTimeoutMin int
}

// BuildType is a build configuration. Build types are the leafs of the
// project tree.
type BuildType struct {
	ID                string
	UUID              string
	Name              string
	Description       string
	VCS               VCSSettings
	Steps             []Step
	Params            Params
	Triggers          []ScheduleTrigger
	Dependencies      []Dependency
	Features          []Feature
	ArtifactRules     string
	FailureConditions FailureConditions
}

// NewBuildType returns a BuildType with the given id and name.
// The UUID of the build type is derived from its ID, the same ID always
// results in the same UUID.
func NewBuildType(id, name string) *BuildType {
	return &BuildType{
		ID:     id,
		UUID:   uuid.NewSHA1(uuidNamespace, []byte(id)).String(),
		Name:   name,
		Params: Params{},
	}
}

func (b *BuildType) String() string {
	return b.ID
}

// AddSteps appends steps to the build type.
func (b *BuildType) AddSteps(steps ...Step) {
	b.Steps = append(b.Steps, steps...)
}

// DependsOn adds a snapshot dependency on the build type with the given ID.
func (b *BuildType) DependsOn(buildTypeID string, runOnFailure bool) {
	b.Dependencies = append(b.Dependencies, Dependency{
		BuildTypeID:  buildTypeID,
		RunOnFailure: runOnFailure,
	})
}
