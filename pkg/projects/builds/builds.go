// Package builds creates the build configurations of the test projects.
package builds

import (
	"fmt"
	"strconv"

	"github.com/simplesurance/ciconf/pkg/cfg"
	"github.com/simplesurance/ciconf/pkg/pipeline"
	"github.com/simplesurance/ciconf/pkg/provider"
)

const (
	DefaultParallelism         = 12
	DefaultTestPrefix          = "TestAcc"
	DefaultBuildTimeoutHours   = 12
	DefaultSweeperTimeoutHours = 2

	ServiceSweeperName = "Service Sweeper"
	ProjectSweeperName = "Project Sweeper"

	FeatureGolang          = "golang"
	FeatureSharedResources = "JetBrains.SharedResources"
	// FeatureSharedResource defines a shared resource at the project
	// level, builds acquire it via a FeatureSharedResources lock.
	FeatureSharedResource = "JetBrains.SharedResource"
)

const artifactRules = `debug*.txt
debug-logs.tar.gz
test-report.xml`

type buildOpts struct {
	parallelism     int
	testPrefix      string
	timeoutHours    int
	nightly         *cfg.NightlyTrigger
	sharedResources []string
	dependencies    []pipeline.Dependency
}

// Opt is an option for the build constructors of the package.
type Opt func(*buildOpts)

// WithParallelism sets the number of tests that run in parallel.
func WithParallelism(n int) Opt {
	return func(o *buildOpts) {
		o.parallelism = n
	}
}

// WithTestPrefix sets the prefix of the test names that are run.
func WithTestPrefix(prefix string) Opt {
	return func(o *buildOpts) {
		o.testPrefix = prefix
	}
}

// WithTimeoutHours sets the maximum duration of a build.
func WithTimeoutHours(h int) Opt {
	return func(o *buildOpts) {
		o.timeoutHours = h
	}
}

// WithNightlyTrigger adds a schedule trigger to the build.
func WithNightlyTrigger(t cfg.NightlyTrigger) Opt {
	return func(o *buildOpts) {
		o.nightly = &t
	}
}

// WithSharedResources makes the build acquire a read lock on each of the
// passed shared resources while it runs.
func WithSharedResources(names ...string) Opt {
	return func(o *buildOpts) {
		o.sharedResources = append(o.sharedResources, names...)
	}
}

// WithDependency adds a snapshot dependency on the build with the given ID.
// The build is run even if the dependency fails.
func WithDependency(buildTypeID string) Opt {
	return func(o *buildOpts) {
		o.dependencies = append(o.dependencies, pipeline.Dependency{
			BuildTypeID:  buildTypeID,
			RunOnFailure: true,
		})
	}
}

func newBuildOpts(opts []Opt) *buildOpts {
	res := buildOpts{
		parallelism:  DefaultParallelism,
		testPrefix:   DefaultTestPrefix,
		timeoutHours: DefaultBuildTimeoutHours,
	}

	for _, opt := range opts {
		opt(&res)
	}

	return &res
}

func (o *buildOpts) apply(bt *pipeline.BuildType) {
	bt.FailureConditions = pipeline.FailureConditions{
		ErrorMessage:        true,
		ExecutionTimeoutMin: o.timeoutHours * 60,
	}

	bt.Triggers = append(bt.Triggers, NightlyTriggers(o.nightly)...)
	bt.Dependencies = append(bt.Dependencies, o.dependencies...)

	bt.Features = append(bt.Features, pipeline.Feature{
		Type:   FeatureGolang,
		Params: map[string]string{"test.format": "json"},
	})

	for _, r := range o.sharedResources {
		bt.Features = append(bt.Features, SharedResourceLock(r))
	}
}

// NightlyTriggers returns the schedule trigger for nightly builds, if t is
// nil or disabled, nil is returned.
func NightlyTriggers(t *cfg.NightlyTrigger) []pipeline.ScheduleTrigger {
	if t == nil || t.Disabled {
		return nil
	}

	return []pipeline.ScheduleTrigger{
		{
			Hour:         t.Hour(),
			Timezone:     "UTC",
			DaysOfWeek:   t.DaysOfWeek,
			DaysOfMonth:  t.DaysOfMonth,
			BranchFilter: "+:" + t.Branch,
		},
	}
}

// SharedResource returns a project feature that defines a shared resource
// that can be acquired by one build at a time.
func SharedResource(name string) pipeline.Feature {
	return pipeline.Feature{
		Type: FeatureSharedResource,
		Params: map[string]string{
			"name":  name,
			"type":  "quoted",
			"quota": "1",
		},
	}
}

// SharedResourceLock returns a build feature that acquires a read lock on
// the shared resource with the given name.
func SharedResourceLock(name string) pipeline.Feature {
	return pipeline.Feature{
		Type:   FeatureSharedResources,
		Params: map[string]string{"locks-param": name + " readLock"},
	}
}

func newCleanCheckoutBuildType(id, name string, vcsRoot pipeline.VcsRoot) *pipeline.BuildType {
	bt := pipeline.NewBuildType(id, name)
	bt.VCS = pipeline.VCSSettings{
		Root:          vcsRoot.ID,
		CleanCheckout: true,
	}
	bt.ArtifactRules = artifactRules

	return bt
}

// SinglePackage returns a build that runs the acceptance tests of pkg.
// The ID of the build is "<parentProjectID>_<pkg.Name>" passed through
// pipeline.ReplaceCharsID.
func SinglePackage(
	parentProjectID string,
	pkg provider.Package,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
	opts ...Opt,
) *pipeline.BuildType {
	o := newBuildOpts(opts)

	bt := newCleanCheckoutBuildType(
		pipeline.ReplaceCharsID(parentProjectID+"_"+pkg.Name),
		pkg.DisplayName+" - Acceptance Tests",
		vcsRoot,
	)
	bt.Description = fmt.Sprintf("Runs the acceptance tests of the %s package", pkg.Path)

	bt.AddSteps(
		SetGitCommitBuildID(),
		TagBuildToIndicateTriggerMethod(),
		ConfigureGoEnv(),
		DownloadTerraformBinary(),
		RunAcceptanceTests(),
		ArchiveArtifactsIfOverLimit(),
	)

	GoogleSpecificTestParameters(bt.Params, accCfg)
	AcceptanceTestParameters(bt.Params, o.parallelism, o.testPrefix, o.timeoutHours)
	TerraformLoggingParameters(bt.Params)
	TerraformCoreBinaryParameters(bt.Params)
	PackagePathParameter(bt.Params, pkg.Path)
	ReadOnlySettings(bt.Params)

	o.apply(bt)

	return bt
}

// ServiceSweeper returns a build that runs the sweepers of all service
// packages of the provider.
func ServiceSweeper(
	parentProjectID string,
	providerName string,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
	opts ...Opt,
) (*pipeline.BuildType, error) {
	return sweeper(parentProjectID+"_SERVICE_SWEEPER", ServiceSweeperName, providerName, vcsRoot, accCfg, false, opts)
}

// ProjectSweeper returns a build that deletes left over test projects.
func ProjectSweeper(
	parentProjectID string,
	providerName string,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
	opts ...Opt,
) (*pipeline.BuildType, error) {
	return sweeper(parentProjectID+"_PROJECT_SWEEPER", ProjectSweeperName, providerName, vcsRoot, accCfg, true, opts)
}

func sweeper(
	id, name, providerName string,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
	projectSweeper bool,
	opts []Opt,
) (*pipeline.BuildType, error) {
	srcDir, err := provider.SourceDir(providerName)
	if err != nil {
		return nil, err
	}

	services, err := provider.SweeperPackages(providerName)
	if err != nil {
		return nil, err
	}

	o := newBuildOpts(append([]Opt{WithTimeoutHours(DefaultSweeperTimeoutHours)}, opts...))

	bt := newCleanCheckoutBuildType(pipeline.ReplaceCharsID(id), name, vcsRoot)
	bt.Description = fmt.Sprintf("Deletes resources left over by acceptance tests of the %s provider", providerName)

	bt.AddSteps(
		SetGitCommitBuildID(),
		TagBuildToIndicateTriggerMethod(),
		ConfigureGoEnv(),
		DownloadTerraformBinary(),
		RunSweepers(),
	)

	GoogleSpecificTestParameters(bt.Params, accCfg)
	SweeperParameters(bt.Params, accCfg, projectSweeper, services)
	TerraformCoreBinaryParameters(bt.Params)
	PackagePathParameter(bt.Params, "./"+srcDir+"/sweeper")
	bt.Params.Text("env.TF_ACC", "1")
	ReadOnlySettings(bt.Params)

	o.apply(bt)

	return bt, nil
}

// VCRRecording returns a build that runs the acceptance tests of all
// packages of the provider in VCR recording mode and uploads the recorded
// cassettes.
func VCRRecording(
	id, name, providerName string,
	vcsRoot pipeline.VcsRoot,
	accCfg *cfg.AccTestConfig,
	opts ...Opt,
) (*pipeline.BuildType, error) {
	srcDir, err := provider.SourceDir(providerName)
	if err != nil {
		return nil, err
	}

	o := newBuildOpts(opts)

	bt := newCleanCheckoutBuildType(pipeline.ReplaceCharsID(id), name, vcsRoot)
	bt.Description = fmt.Sprintf("Records VCR cassettes of the %s provider using the %s repository", providerName, vcsRoot.URL)

	bt.AddSteps(
		SetGitCommitBuildID(),
		TagBuildToIndicateTriggerMethod(),
		ConfigureGoEnv(),
		DownloadTerraformBinary(),
		DownloadVCRCassettes(),
		RunAcceptanceTests(),
		UploadVCRCassettes(),
		ArchiveArtifactsIfOverLimit(),
	)

	GoogleSpecificTestParameters(bt.Params, accCfg)
	AcceptanceTestParameters(bt.Params, o.parallelism, o.testPrefix, o.timeoutHours)
	VCRRecordingParameters(bt.Params, accCfg)
	TerraformLoggingParameters(bt.Params)
	TerraformCoreBinaryParameters(bt.Params)
	PackagePathParameter(bt.Params, "./"+srcDir+"/...")
	bt.Params.Text("env.VCR_TEST_PARALLELISM", strconv.Itoa(o.parallelism))
	ReadOnlySettings(bt.Params)

	o.apply(bt)

	return bt, nil
}
