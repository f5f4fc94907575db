package builds

import (
	"strconv"
	"strings"

	"github.com/simplesurance/ciconf/pkg/cfg"
	"github.com/simplesurance/ciconf/pkg/pipeline"
	"github.com/simplesurance/ciconf/pkg/provider"
)

const (
	// DefaultTerraformCoreVersion is the Terraform CLI version that
	// acceptance tests are run with.
	DefaultTerraformCoreVersion = "1.9.8"

	ParamReadOnlySettings = "teamcity.ui.settings.readOnly"
	ParamPackagePath      = "env.PACKAGE_PATH"
	ParamVCRMode          = "env.VCR_MODE"
	ParamVCRPath          = "env.VCR_PATH"
	ParamVCRBucketName    = "env.VCR_BUCKET_NAME"
	ParamInfraProject     = "env.GOOGLE_INFRA_PROJECT"
	ParamSkipProjectSweep = "env.SKIP_PROJECT_SWEEPER"
	ParamSweepRun         = "env.SWEEP_RUN"
	ParamSweeperRegions   = "env.SWEEPER_REGIONS"
	ParamSweeperServices  = "env.SWEEPER_SERVICES"
)

const checkoutDir = "%system.teamcity.build.checkoutDir%"

// ReadOnlySettings marks the settings of a project or build as not
// editable in the UI of the CI server.
func ReadOnlySettings(p pipeline.Params) {
	p.Hidden(ParamReadOnlySettings, "true", "Settings are generated by ciconf, changes must be made in the ciconf repository")
}

// GoogleSpecificTestParameters sets the environment variables that the
// acceptance tests read the test environment from.
func GoogleSpecificTestParameters(p pipeline.Params, c *cfg.AccTestConfig) {
	p.Password("env.GOOGLE_CREDENTIALS", c.Credentials, "The Google credentials for this test environment")
	p.Hidden("env.GOOGLE_SERVICE_ACCOUNT", c.ServiceAccount, "The service account used by the acceptance tests")
	p.Hidden("env.GOOGLE_PROJECT", c.Project, "The project that resources are created in")
	p.Hidden("env.GOOGLE_PROJECT_NUMBER", c.ProjectNumber, "The project number of GOOGLE_PROJECT")
	p.Hidden("env.GOOGLE_ORG", c.Org, "The organization of the test projects")
	p.Hidden("env.GOOGLE_ORG_2", c.Org2, "A second organization used by cross-organization tests")
	p.Hidden("env.GOOGLE_ORG_DOMAIN", c.OrgDomain, "The domain of GOOGLE_ORG")
	p.Hidden("env.GOOGLE_BILLING_ACCOUNT", c.BillingAccount, "The billing account linked to test projects")
	p.Hidden("env.GOOGLE_BILLING_ACCOUNT_2", c.BillingAccount2, "A second billing account")
	p.Hidden("env.GOOGLE_MASTER_BILLING_ACCOUNT", c.MasterBillingAccount, "The billing account used by billing budget tests")
	p.Hidden("env.GOOGLE_CUST_ID", c.CustID, "The customer ID of the organization")
	p.Hidden("env.GOOGLE_IDENTITY_USER", c.IdentityUser, "The user used by identity tests")
	p.Hidden("env.GOOGLE_FIRESTORE_PROJECT", c.FirestoreProject, "The project used by Firestore tests")
	p.Hidden("env.GOOGLE_CHRONICLE_INSTANCE_ID", c.ChronicleInstanceID, "The Chronicle instance used by Chronicle tests")
	p.Text("env.GOOGLE_REGION", c.Region)
	p.Text("env.GOOGLE_ZONE", c.Zone)
}

// AcceptanceTestParameters enable Terraform acceptance tests and configure
// which tests run and how many run in parallel.
func AcceptanceTestParameters(p pipeline.Params, parallelism int, testPrefix string, timeoutHours int) {
	p.Text("env.TF_ACC", "1")
	p.Text("env.TF_SCHEMA_PANIC_ON_ERROR", "1")
	p.Text("env.PARALLELISM", strconv.Itoa(parallelism))
	p.Text("env.TEST_PREFIX", testPrefix)
	p.Text("env.TIMEOUT", strconv.Itoa(timeoutHours))
}

// TerraformLoggingParameters configures the log output of Terraform and the
// provider. A log file is written per test.
func TerraformLoggingParameters(p pipeline.Params) {
	p.Text("env.TF_LOG", "DEBUG")
	p.Text("env.TF_LOG_CORE", "WARN")
	p.Text("env.TF_LOG_SDK_FRAMEWORK", "INFO")
	p.Text("env.TF_LOG_PATH_MASK", checkoutDir+"/debug-%%s.txt")
}

// TerraformCoreBinaryParameters sets the Terraform CLI version that is
// downloaded by the build.
func TerraformCoreBinaryParameters(p pipeline.Params) {
	p.Text("env.TERRAFORM_CORE_VERSION", DefaultTerraformCoreVersion)
	p.Text("env.TF_ACC_TERRAFORM_PATH", checkoutDir+"/tools/terraform")
}

// PackagePathParameter sets the path of the Go package that is tested.
func PackagePathParameter(p pipeline.Params, path string) {
	p.Text(ParamPackagePath, path)
}

// VCRRecordingParameters configure the tests to record HTTP interactions
// into cassettes that are stored in the VCR bucket.
func VCRRecordingParameters(p pipeline.Params, c *cfg.AccTestConfig) {
	p.Text(ParamVCRMode, "RECORDING")
	p.Text(ParamVCRPath, checkoutDir+"/fixtures")
	p.Hidden(ParamVCRBucketName, c.VCRBucketName, "The bucket that VCR cassettes are stored in")
	p.Hidden(ParamInfraProject, c.InfraProject, "The project containing the VCR bucket")
	p.Text("env.TESTARGS", "-run=%env.TEST_PREFIX%")
}

// SweeperParameters configure which sweepers are run.
// Project sweepers delete whole projects and are only run by the dedicated
// project sweeper build. Service sweepers run the sweepers of the packages
// in services.
func SweeperParameters(p pipeline.Params, c *cfg.AccTestConfig, projectSweeper bool, services []provider.Package) {
	skipProjectSweeper := "1"
	sweepRun := ""
	if projectSweeper {
		skipProjectSweeper = "0"
		sweepRun = "GoogleProject"
	}

	p.Text(ParamSkipProjectSweep, skipProjectSweeper)
	p.Text(ParamSweepRun, sweepRun)
	p.Text(ParamSweeperRegions, c.Region)

	if projectSweeper {
		return
	}

	names := make([]string, 0, len(services))
	for _, pkg := range services {
		names = append(names, pkg.Name)
	}

	p.Text(ParamSweeperServices, strings.Join(names, ","))
}
