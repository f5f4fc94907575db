// Package projects builds the project tree of the Google Terraform provider
// CI configuration.
package projects

import (
	"fmt"

	"github.com/simplesurance/ciconf/pkg/cfg"
	"github.com/simplesurance/ciconf/pkg/pipeline"
	"github.com/simplesurance/ciconf/pkg/projects/builds"
	"github.com/simplesurance/ciconf/pkg/projects/reused"
	"github.com/simplesurance/ciconf/pkg/provider"
)

const (
	RootProjectID           = "TERRAFORM_PROVIDER_GOOGLE"
	GoogleGaProjectID       = "GOOGLE"
	GoogleBetaProjectID     = "GOOGLE_BETA"
	ProjectSweeperProjectID = "PROJECT_SWEEPER"
)

// GoogleSubProjectBeta returns the project that contains the builds testing
// the Beta provider.
func GoogleSubProjectBeta(c *cfg.Context) (*pipeline.Project, error) {
	id := pipeline.ReplaceCharsID(GoogleBetaProjectID)

	betaCfg := cfg.GetBetaAcceptanceTestConfig(c)
	vcrCfg := cfg.GetVcrAcceptanceTestConfig(c)

	p := pipeline.NewProject(
		id,
		"Google Beta",
		"Subproject containing builds for testing the Beta version of the Google provider",
	)

	nightly, err := reused.NightlyTests(id, provider.NameBeta, provider.HashiCorpVCSRootBeta, &betaCfg)
	if err != nil {
		return nil, err
	}

	upstream, err := reused.MMUpstream(id, provider.NameBeta, provider.ModularMagicianVCSRootBeta, &vcrCfg)
	if err != nil {
		return nil, err
	}

	vcr, err := reused.VCRRecording(id, provider.NameBeta, provider.HashiCorpVCSRootBeta, provider.ModularMagicianVCSRootBeta, &vcrCfg)
	if err != nil {
		return nil, err
	}

	if err := addSubProjects(p, nightly, upstream, vcr); err != nil {
		return nil, err
	}

	builds.ReadOnlySettings(p.Params)

	return p, nil
}

// GoogleSubProjectGa returns the project that contains the builds testing
// the GA provider.
func GoogleSubProjectGa(c *cfg.Context) (*pipeline.Project, error) {
	id := pipeline.ReplaceCharsID(GoogleGaProjectID)

	gaCfg := cfg.GetGaAcceptanceTestConfig(c)
	vcrCfg := cfg.GetVcrAcceptanceTestConfig(c)

	p := pipeline.NewProject(
		id,
		"Google",
		"Subproject containing builds for testing the GA version of the Google provider",
	)

	nightly, err := reused.NightlyTests(id, provider.NameGa, provider.HashiCorpVCSRootGa, &gaCfg)
	if err != nil {
		return nil, err
	}

	upstream, err := reused.MMUpstream(id, provider.NameGa, provider.ModularMagicianVCSRootGa, &vcrCfg)
	if err != nil {
		return nil, err
	}

	if err := addSubProjects(p, nightly, upstream); err != nil {
		return nil, err
	}

	builds.ReadOnlySettings(p.Params)

	return p, nil
}

// ProjectSweeperSubProject returns the project containing the build that
// deletes left over test projects. It runs in the GA test environment.
func ProjectSweeperSubProject(c *cfg.Context) (*pipeline.Project, error) {
	id := pipeline.ReplaceCharsID(ProjectSweeperProjectID)

	gaCfg := cfg.GetGaAcceptanceTestConfig(c)

	p := pipeline.NewProject(
		id,
		"Project Sweeper",
		"Subproject containing a build configuration for sweeping project resources",
	)

	bt, err := builds.ProjectSweeper(id, provider.NameGa, provider.HashiCorpVCSRootGa, &gaCfg,
		builds.WithNightlyTrigger(gaCfg.Nightly),
	)
	if err != nil {
		return nil, err
	}

	if err := p.AddBuildType(bt); err != nil {
		return nil, err
	}

	builds.ReadOnlySettings(p.Params)

	return p, nil
}

// GoogleRootProject returns the root of the project tree. It registers
// the VCS roots that the builds of the subprojects reference.
func GoogleRootProject(c *cfg.Context) (*pipeline.Project, error) {
	p := pipeline.NewProject(
		RootProjectID,
		"Terraform Provider Google",
		"Contains the builds testing the Google Terraform providers",
	)

	for _, r := range provider.VCSRoots() {
		if err := p.AddVcsRoot(r); err != nil {
			return nil, err
		}
	}

	for _, fn := range []func(*cfg.Context) (*pipeline.Project, error){
		GoogleSubProjectGa,
		GoogleSubProjectBeta,
		ProjectSweeperSubProject,
	} {
		sp, err := fn(c)
		if err != nil {
			return nil, err
		}

		if err := p.AddSubProject(sp); err != nil {
			return nil, err
		}
	}

	builds.ReadOnlySettings(p.Params)

	return p, nil
}

func addSubProjects(p *pipeline.Project, subProjects ...*pipeline.Project) error {
	for _, sp := range subProjects {
		if err := p.AddSubProject(sp); err != nil {
			return fmt.Errorf("adding subproject to %s failed: %w", p.ID, err)
		}
	}

	return nil
}
