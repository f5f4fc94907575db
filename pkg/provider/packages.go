package provider

import (
	"path"
	"slices"
	"strings"
)

// Package is a Go package of the provider that is tested by its own build.
type Package struct {
	// Name is the package name, it is used to derive the build ID.
	Name        string
	DisplayName string
	// Path is relative to the repository root, e.g. "./google/services/compute".
	Path string
}

// infraPackages are packages outside of the services directory that
// contain acceptance tests.
var infraPackages = []Package{
	{Name: "envvar", DisplayName: "Environment Variables"},
	{Name: "functions", DisplayName: "Provider-Defined Functions"},
	{Name: "fwmodels", DisplayName: "Framework Models"},
	{Name: "fwprovider", DisplayName: "Framework Provider"},
	{Name: "fwresource", DisplayName: "Framework Resource"},
	{Name: "fwtransport", DisplayName: "Framework Transport"},
	{Name: "provider", DisplayName: "SDK Provider"},
	{Name: "transport", DisplayName: "Transport"},
	{Name: "tpgresource", DisplayName: "TPG Resource"},
}

// servicesGa are the service packages that exist in both providers.
var servicesGa = []Package{
	{Name: "accesscontextmanager", DisplayName: "Access Context Manager"},
	{Name: "artifactregistry", DisplayName: "Artifact Registry"},
	{Name: "bigquery", DisplayName: "BigQuery"},
	{Name: "bigtable", DisplayName: "Bigtable"},
	{Name: "cloudfunctions", DisplayName: "Cloud Functions"},
	{Name: "cloudrun", DisplayName: "Cloud Run"},
	{Name: "compute", DisplayName: "Compute"},
	{Name: "container", DisplayName: "Container"},
	{Name: "dataproc", DisplayName: "Dataproc"},
	{Name: "dns", DisplayName: "DNS"},
	{Name: "firestore", DisplayName: "Firestore"},
	{Name: "iambeta", DisplayName: "IAM Beta"},
	{Name: "kms", DisplayName: "KMS"},
	{Name: "logging", DisplayName: "Logging"},
	{Name: "monitoring", DisplayName: "Monitoring"},
	{Name: "pubsub", DisplayName: "PubSub"},
	{Name: "redis", DisplayName: "Redis"},
	{Name: "resourcemanager", DisplayName: "Resource Manager"},
	{Name: "secretmanager", DisplayName: "Secret Manager"},
	{Name: "servicenetworking", DisplayName: "Service Networking"},
	{Name: "spanner", DisplayName: "Spanner"},
	{Name: "sql", DisplayName: "SQL"},
	{Name: "storage", DisplayName: "Storage"},
}

// servicesBetaOnly are service packages that only exist in the Beta
// provider.
var servicesBetaOnly = []Package{
	{Name: "firebase", DisplayName: "Firebase"},
	{Name: "firebasehosting", DisplayName: "Firebase Hosting"},
	{Name: "runtimeconfig", DisplayName: "Runtime Configurator"},
	{Name: "workbench", DisplayName: "Workbench"},
}

// Packages returns the packages of the provider that are tested, sorted by
// name. Their Path fields are set to the location in the repository.
func Packages(providerName string) ([]Package, error) {
	srcDir, err := SourceDir(providerName)
	if err != nil {
		return nil, err
	}

	services := slices.Clone(servicesGa)
	if providerName == NameBeta {
		services = append(services, servicesBetaOnly...)
	}

	result := make([]Package, 0, len(infraPackages)+len(services))

	for _, p := range infraPackages {
		p.Path = "./" + path.Join(srcDir, p.Name)
		result = append(result, p)
	}

	for _, p := range services {
		p.Path = "./" + path.Join(srcDir, "services", p.Name)
		result = append(result, p)
	}

	slices.SortFunc(result, func(a, b Package) int {
		return strings.Compare(a.Name, b.Name)
	})

	return result, nil
}

// SweeperPackages returns the packages that contain sweepers. A sweeper
// deletes resources that were left over by failed acceptance tests.
func SweeperPackages(providerName string) ([]Package, error) {
	pkgs, err := Packages(providerName)
	if err != nil {
		return nil, err
	}

	result := make([]Package, 0, len(pkgs))
	for _, p := range pkgs {
		if slices.ContainsFunc(infraPackages, func(infra Package) bool { return infra.Name == p.Name }) {
			continue
		}

		result = append(result, p)
	}

	return result, nil
}
