package render

import (
	"github.com/simplesurance/ciconf/pkg/pipeline"
)

const secretMask = "********"

// Document is the serialized form of a project tree.
type Document struct {
	Version int     `json:"version" yaml:"version" toml:"version"`
	Project Project `json:"project" yaml:"project" toml:"project"`
}

type Project struct {
	ID          string      `json:"id" yaml:"id" toml:"id"`
	Name        string      `json:"name" yaml:"name" toml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Params      []Param     `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Features    []Feature   `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
	VcsRoots    []VcsRoot   `json:"vcs_roots,omitempty" yaml:"vcs_roots,omitempty" toml:"vcs_roots,omitempty"`
	BuildTypes  []BuildType `json:"build_types,omitempty" yaml:"build_types,omitempty" toml:"build_types,omitempty"`
	SubProjects []Project   `json:"subprojects,omitempty" yaml:"subprojects,omitempty" toml:"subprojects,omitempty"`
}

type Param struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Value       string `json:"value" yaml:"value" toml:"value"`
	Kind        string `json:"kind" yaml:"kind" toml:"kind"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

type Feature struct {
	Type   string            `json:"type" yaml:"type" toml:"type"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
}

type VcsRoot struct {
	ID         string `json:"id" yaml:"id" toml:"id"`
	Name       string `json:"name" yaml:"name" toml:"name"`
	URL        string `json:"url" yaml:"url" toml:"url"`
	Branch     string `json:"branch" yaml:"branch" toml:"branch"`
	BranchSpec string `json:"branch_spec" yaml:"branch_spec" toml:"branch_spec"`
}

type VCS struct {
	Root          string `json:"root" yaml:"root" toml:"root"`
	CleanCheckout bool   `json:"clean_checkout" yaml:"clean_checkout" toml:"clean_checkout"`
	CheckoutDir   string `json:"checkout_dir,omitempty" yaml:"checkout_dir,omitempty" toml:"checkout_dir,omitempty"`
}

type Step struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Script     string `json:"script" yaml:"script" toml:"script"`
	WorkingDir string `json:"working_dir,omitempty" yaml:"working_dir,omitempty" toml:"working_dir,omitempty"`
}

type Trigger struct {
	Hour                   int    `json:"hour" yaml:"hour" toml:"hour"`
	Minute                 int    `json:"minute" yaml:"minute" toml:"minute"`
	Timezone               string `json:"timezone" yaml:"timezone" toml:"timezone"`
	DaysOfWeek             string `json:"days_of_week" yaml:"days_of_week" toml:"days_of_week"`
	DaysOfMonth            string `json:"days_of_month" yaml:"days_of_month" toml:"days_of_month"`
	BranchFilter           string `json:"branch_filter" yaml:"branch_filter" toml:"branch_filter"`
	WithPendingChangesOnly bool   `json:"with_pending_changes_only" yaml:"with_pending_changes_only" toml:"with_pending_changes_only"`
}

type Dependency struct {
	BuildTypeID  string `json:"build_type_id" yaml:"build_type_id" toml:"build_type_id"`
	RunOnFailure bool   `json:"run_on_failure" yaml:"run_on_failure" toml:"run_on_failure"`
}

type FailureConditions struct {
	ErrorMessage        bool `json:"error_message" yaml:"error_message" toml:"error_message"`
	ExecutionTimeoutMin int  `json:"execution_timeout_min" yaml:"execution_timeout_min" toml:"execution_timeout_min"`
}

type BuildType struct {
	ID                string            `json:"id" yaml:"id" toml:"id"`
	UUID              string            `json:"uuid" yaml:"uuid" toml:"uuid"`
	Name              string            `json:"name" yaml:"name" toml:"name"`
	Description       string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	VCS               VCS               `json:"vcs" yaml:"vcs" toml:"vcs"`
	Steps             []Step            `json:"steps,omitempty" yaml:"steps,omitempty" toml:"steps,omitempty"`
	Params            []Param           `json:"params,omitempty" yaml:"params,omitempty" toml:"params,omitempty"`
	Triggers          []Trigger         `json:"triggers,omitempty" yaml:"triggers,omitempty" toml:"triggers,omitempty"`
	Dependencies      []Dependency      `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
	Features          []Feature         `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
	ArtifactRules     string            `json:"artifact_rules,omitempty" yaml:"artifact_rules,omitempty" toml:"artifact_rules,omitempty"`
	FailureConditions FailureConditions `json:"failure_conditions" yaml:"failure_conditions" toml:"failure_conditions"`
}

func newParams(p pipeline.Params, revealSecrets bool) []Param {
	names := p.Names()
	res := make([]Param, 0, len(names))

	for _, name := range names {
		param := p[name]

		val := param.Value
		if param.Kind == pipeline.ParamPassword && !revealSecrets {
			val = secretMask
		}

		res = append(res, Param{
			Name:        name,
			Value:       val,
			Kind:        param.Kind.String(),
			Description: param.Description,
		})
	}

	return res
}

func newFeatures(features []pipeline.Feature) []Feature {
	res := make([]Feature, 0, len(features))
	for _, f := range features {
		res = append(res, Feature{Type: f.Type, Params: f.Params})
	}

	return res
}

func newBuildType(bt *pipeline.BuildType, revealSecrets bool) BuildType {
	res := BuildType{
		ID:          bt.ID,
		UUID:        bt.UUID,
		Name:        bt.Name,
		Description: bt.Description,
		VCS: VCS{
			Root:          bt.VCS.Root,
			CleanCheckout: bt.VCS.CleanCheckout,
			CheckoutDir:   bt.VCS.CheckoutDir,
		},
		Params:        newParams(bt.Params, revealSecrets),
		Features:      newFeatures(bt.Features),
		ArtifactRules: bt.ArtifactRules,
		FailureConditions: FailureConditions{
			ErrorMessage:        bt.FailureConditions.ErrorMessage,
			ExecutionTimeoutMin: bt.FailureConditions.ExecutionTimeoutMin,
		},
	}

	for _, s := range bt.Steps {
		res.Steps = append(res.Steps, Step(s))
	}

	for _, t := range bt.Triggers {
		res.Triggers = append(res.Triggers, Trigger(t))
	}

	for _, d := range bt.Dependencies {
		res.Dependencies = append(res.Dependencies, Dependency(d))
	}

	return res
}

func newProject(p *pipeline.Project, revealSecrets bool) Project {
	res := Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Params:      newParams(p.Params, revealSecrets),
		Features:    newFeatures(p.Features),
	}

	for _, r := range p.VcsRoots {
		res.VcsRoots = append(res.VcsRoots, VcsRoot(r))
	}

	for _, bt := range p.BuildTypes {
		res.BuildTypes = append(res.BuildTypes, newBuildType(bt, revealSecrets))
	}

	for _, sp := range p.SubProjects {
		res.SubProjects = append(res.SubProjects, newProject(sp, revealSecrets))
	}

	return res
}
