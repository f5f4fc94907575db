// Package reused contains the subprojects that are created for the GA and
// the Beta provider.
package reused

import (
	"fmt"
	"slices"

	"github.com/simplesurance/ciconf/pkg/cfg"
	"github.com/simplesurance/ciconf/pkg/pipeline"
	"github.com/simplesurance/ciconf/pkg/projects/builds"
	"github.com/simplesurance/ciconf/pkg/provider"
)

const (
	NightlyTestsProjectID = "NIGHTLY_TESTS"
	MMUpstreamProjectID   = "MM_UPSTREAM"
	VCRRecordingProjectID = "VCR"
)

// packageBuilds adds a build for every provider package and a service
// sweeper build to p. The package builds depend on the sweeper.
func packageBuilds(
	p *pipeline.Project,
	providerName string,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
	opts ...builds.Opt,
) error {
	pkgs, err := provider.Packages(providerName)
	if err != nil {
		return err
	}

	sweeper, err := builds.ServiceSweeper(p.ID, providerName, vcsRoot, accCfg, opts...)
	if err != nil {
		return err
	}

	if err := p.AddBuildType(sweeper); err != nil {
		return err
	}

	pkgOpts := append(slices.Clip(opts), builds.WithDependency(sweeper.ID))
	for _, pkg := range pkgs {
		bt := builds.SinglePackage(p.ID, pkg, vcsRoot, accCfg, pkgOpts...)
		if err := p.AddBuildType(bt); err != nil {
			return err
		}
	}

	return nil
}

func sharedResourceName(projectID string) string {
	return projectID + "_SERVICE_LOCK"
}

// NightlyTests returns the project that runs the acceptance tests of all
// packages of the provider every night. The ID of the project is
// "<parentProjectID>_NIGHTLY_TESTS".
func NightlyTests(
	parentProjectID string,
	providerName string,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
) (*pipeline.Project, error) {
	id := pipeline.ReplaceCharsID(parentProjectID + "_" + NightlyTestsProjectID)

	p := pipeline.NewProject(
		id,
		"Nightly Tests",
		fmt.Sprintf("A project connected to the %s repository, where scheduled nightly tests run and users can trigger ad-hoc builds", vcsRoot.URL),
	)

	lock := sharedResourceName(id)
	p.Features = append(p.Features, builds.SharedResource(lock))

	err := packageBuilds(p, providerName, vcsRoot, accCfg,
		builds.WithNightlyTrigger(accCfg.Nightly),
		builds.WithSharedResources(lock),
	)
	if err != nil {
		return nil, fmt.Errorf("creating builds of project %s failed: %w", id, err)
	}

	return p, nil
}

// MMUpstream returns the project that tests the changes generated by the
// Modular Magician before they are merged into the provider repository.
// Its builds are only started manually.
func MMUpstream(
	parentProjectID string,
	providerName string,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
) (*pipeline.Project, error) {
	id := pipeline.ReplaceCharsID(parentProjectID + "_" + MMUpstreamProjectID)

	p := pipeline.NewProject(
		id,
		"Upstream MM Testing",
		fmt.Sprintf("A project connected to the %s repository, to let users trigger ad-hoc builds against branches for PRs", vcsRoot.URL),
	)

	lock := sharedResourceName(id)
	p.Features = append(p.Features, builds.SharedResource(lock))

	if err := packageBuilds(p, providerName, vcsRoot, accCfg, builds.WithSharedResources(lock)); err != nil {
		return nil, fmt.Errorf("creating builds of project %s failed: %w", id, err)
	}

	return p, nil
}

// VCRRecording returns the project that records VCR cassettes. It contains
// one build per VCS root.
func VCRRecording(
	parentProjectID string,
	providerName string,
	hashiCorpVCSRoot pipeline.VcsRoot,
	modularMagicianVCSRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
) (*pipeline.Project, error) {
	id := pipeline.ReplaceCharsID(parentProjectID + "_" + VCRRecordingProjectID)

	p := pipeline.NewProject(
		id,
		"VCR Recording",
		"A project connected to the HashiCorp and the Modular Magician repositories, for recording VCR cassettes",
	)

	for _, b := range []struct {
		suffix string
		name   string
		root   pipeline.VcsRoot
	}{
		{suffix: "HASHICORP", name: "VCR Recording - HashiCorp", root: hashiCorpVCSRoot},
		{suffix: "MODULAR_MAGICIAN", name: "VCR Recording - Modular Magician", root: modularMagicianVCSRoot},
	} {
		bt, err := builds.VCRRecording(id+"_"+b.suffix, b.name, providerName, b.root, accCfg)
		if err != nil {
			return nil, fmt.Errorf("creating builds of project %s failed: %w", id, err)
		}

		if err := p.AddBuildType(bt); err != nil {
			return nil, err
		}
	}

	return p, nil
}
