// Package provider describes the Terraform provider repositories that are
// tested: their names, VCS roots and Go packages.
package provider

import (
	"fmt"

	"github.com/simplesurance/ciconf/pkg/pipeline"
)

const (
	NameGa   = "google"
	NameBeta = "google-beta"
)

const (
	mainBranch  = "refs/heads/main"
	allBranches = "+:*"
)

var (
	// HashiCorpVCSRootGa is the repository that releases of the GA
	// provider are built from.
	HashiCorpVCSRootGa = pipeline.NewGitVcsRoot(
		"HASHICORP_GA",
		"https://github.com/hashicorp/terraform-provider-google",
		mainBranch,
		mainBranchSpec(),
	)

	// HashiCorpVCSRootBeta is the repository that releases of the Beta
	// provider are built from.
	HashiCorpVCSRootBeta = pipeline.NewGitVcsRoot(
		"HASHICORP_BETA",
		"https://github.com/hashicorp/terraform-provider-google-beta",
		mainBranch,
		mainBranchSpec(),
	)

	// ModularMagicianVCSRootGa is the repository that the code generator
	// pushes downstream GA provider changes to, before they are merged.
	ModularMagicianVCSRootGa = pipeline.NewGitVcsRoot(
		"MODULAR_MAGICIAN_GA",
		"https://github.com/modular-magician/terraform-provider-google",
		mainBranch,
		allBranches,
	)

	// ModularMagicianVCSRootBeta is the repository that the code generator
	// pushes downstream Beta provider changes to, before they are merged.
	ModularMagicianVCSRootBeta = pipeline.NewGitVcsRoot(
		"MODULAR_MAGICIAN_BETA",
		"https://github.com/modular-magician/terraform-provider-google-beta",
		mainBranch,
		allBranches,
	)
)

func mainBranchSpec() string {
	return "+:" + mainBranch
}

// VCSRoots returns all VCS roots that are used by the builds.
func VCSRoots() []pipeline.VcsRoot {
	return []pipeline.VcsRoot{
		HashiCorpVCSRootGa,
		HashiCorpVCSRootBeta,
		ModularMagicianVCSRootGa,
		ModularMagicianVCSRootBeta,
	}
}

// SourceDir returns the directory in the provider repository that contains
// the Go packages of the provider.
func SourceDir(providerName string) (string, error) {
	switch providerName {
	case NameGa:
		return "google", nil
	case NameBeta:
		return "google-beta", nil
	default:
		return "", fmt.Errorf("unsupported provider name %q, must be %q or %q", providerName, NameGa, NameBeta)
	}
}
