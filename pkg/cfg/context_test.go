package cfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplesurance/ciconf/pkg/cfg/resolver"
)

func setExampleEnv(t *testing.T) {
	t.Helper()

	for _, env := range []string{"GA", "BETA", "VCR"} {
		t.Setenv("GOOGLE_CREDENTIALS_"+env, "credentialsJSON:"+strings.ToLower(env))
		t.Setenv("GOOGLE_SERVICE_ACCOUNT_"+env, "sa-"+strings.ToLower(env))
		t.Setenv("GOOGLE_PROJECT_"+env, "project-"+strings.ToLower(env))
	}

	t.Setenv("GOOGLE_BILLING_ACCOUNT", "000000-000000-000000")
	t.Setenv("GOOGLE_ORG", "123456789")
	t.Setenv("VCR_BUCKET_NAME", "vcr-cassettes")
}

func validContext() *Context {
	c := Context{
		ConfigVersion: Version,
		GA:            Environment{Credentials: "c", ServiceAccount: "sa", Project: "p"},
		Beta:          Environment{Credentials: "c", ServiceAccount: "sa", Project: "p"},
		VCR:           Environment{Credentials: "c", ServiceAccount: "sa", Project: "p"},
		Shared:        Shared{BillingAccount: "b", Org: "o", Region: "r", Zone: "z"},
		VCRStorage:    VCRStorage{VCRBucketName: "bucket"},
	}
	c.ApplyDefaults()

	return &c
}

func Test_ExampleContext_WrittenAndLoadedIsValid(t *testing.T) {
	setExampleEnv(t)

	cfgPath := filepath.Join(t.TempDir(), "ciconf.toml")

	require.NoError(t, ExampleContext().ToFile(cfgPath))

	c, err := Load(cfgPath, resolver.NewGoTemplate(filepath.Dir(cfgPath)))
	require.NoError(t, err)

	assert.Equal(t, cfgPath, c.FilePath())
	assert.Equal(t, "credentialsJSON:beta", c.Beta.Credentials)
	assert.Equal(t, "project-vcr", c.VCR.Project)
	assert.Equal(t, "us-central1", c.Shared.Region)
	assert.Equal(t, "vcr-cassettes", c.VCRStorage.VCRBucketName)
	require.NotNil(t, c.Nightly)
	assert.Equal(t, DefaultNightlyStartHour, c.Nightly.Hour())
}

func TestToFileDoesNotOverwrite(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ciconf.toml")

	require.NoError(t, ExampleContext().ToFile(cfgPath))
	require.Error(t, ExampleContext().ToFile(cfgPath))
	require.NoError(t, ExampleContext().ToFile(cfgPath, ToFileOptOverwrite()))
}

func TestLoadHCL(t *testing.T) {
	const content = `
config_version = 1

ga {
  credentials     = env["_CICONF_GA_CREDENTIALS"]
  service_account = "sa-ga"
  project         = "project-ga"
}

beta {
  credentials     = "credentials-beta"
  service_account = "sa-beta"
  project         = "project-beta"
}

vcr {
  credentials     = "credentials-vcr"
  service_account = "sa-vcr"
  project         = "{{ env \"_CICONF_VCR_PROJECT\" }}"
}

shared {
  billing_account = "billing"
  org             = "org"
  region          = "europe-west1"
  zone            = "europe-west1-b"
}

vcr_storage {
  vcr_bucket_name = "bucket"
}

nightly {
  start_hour = 7
}
`
	t.Setenv("_CICONF_VCR_PROJECT", "project-vcr")
	t.Setenv("_CICONF_GA_CREDENTIALS", "credentials-ga")

	cfgPath := filepath.Join(t.TempDir(), "ciconf.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	c, err := Load(cfgPath, resolver.NewGoTemplate(filepath.Dir(cfgPath)))
	require.NoError(t, err)

	assert.Equal(t, "credentials-ga", c.GA.Credentials)
	assert.Equal(t, "credentials-beta", c.Beta.Credentials)
	assert.Equal(t, "project-vcr", c.VCR.Project)
	assert.Equal(t, "europe-west1", c.Shared.Region)
	require.NotNil(t, c.Nightly)
	assert.Equal(t, 7, c.Nightly.Hour())
	assert.Equal(t, DefaultNightlyBranch, c.Nightly.Branch)
	assert.Equal(t, DefaultNightlyDaysOfWeek, c.Nightly.DaysOfWeek)
}

func TestLoadHCLUndefinedEnvVarFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ciconf.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
config_version = 1

ga {
  credentials     = env["_CICONF_UNDEFINED_ENV_VAR_1234"]
  service_account = "sa"
  project         = "project"
}
`), 0o600))

	_, err := ContextFromFile(cfgPath)
	require.Error(t, err)
}

func TestLoadHCLMissingBlockFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ciconf.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte("config_version = 1\n"), 0o600))

	_, err := ContextFromFile(cfgPath)
	require.Error(t, err)
}

func TestLoadTOMLUnknownFieldFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ciconf.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("config_version = 1\nunknown_field = 2\n"), 0o600))

	_, err := ContextFromFile(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown_field")
}

func TestLoadUnsupportedExtensionFails(t *testing.T) {
	_, err := ContextFromFile("ciconf.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestLoadUndefinedEnvVarFails(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ciconf.toml")
	require.NoError(t, ExampleContext().ToFile(cfgPath))

	_, err := Load(cfgPath, resolver.NewGoTemplateWithEnv("", func(string) (string, bool) { return "", false }))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GA.credentials")
}

func TestValidate(t *testing.T) {
	testcases := []struct {
		name           string
		modify         func(*Context)
		expectedErrStr string
	}{
		{
			name:   "Valid",
			modify: func(*Context) {},
		},
		{
			name:           "VersionUnset",
			modify:         func(c *Context) { c.ConfigVersion = 0 },
			expectedErrStr: "config_version: can not be unset",
		},
		{
			name:           "VersionIncompatible",
			modify:         func(c *Context) { c.ConfigVersion = Version + 1 },
			expectedErrStr: "incompatible configuration file",
		},
		{
			name:           "MissingCredentials",
			modify:         func(c *Context) { c.Beta.Credentials = "" },
			expectedErrStr: "Beta.credentials: can not be empty",
		},
		{
			name:           "WhitespaceProject",
			modify:         func(c *Context) { c.VCR.Project = "  " },
			expectedErrStr: "VCR.project: can not be empty",
		},
		{
			name:           "MissingRegion",
			modify:         func(c *Context) { c.Shared.Region = "" },
			expectedErrStr: "Shared.region: can not be empty",
		},
		{
			name:           "MissingBucket",
			modify:         func(c *Context) { c.VCRStorage.VCRBucketName = "" },
			expectedErrStr: "VCRStorage.vcr_bucket_name: can not be empty",
		},
		{
			name:           "StartHourOutOfRange",
			modify:         func(c *Context) { c.Nightly.StartHour = intPtr(24) },
			expectedErrStr: "Nightly.start_hour",
		},
		{
			name:           "BranchNotARef",
			modify:         func(c *Context) { c.Nightly.Branch = "main" },
			expectedErrStr: "Nightly.branch",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			c := validContext()
			tc.modify(c)

			err := c.Validate()
			if tc.expectedErrStr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErrStr)
		})
	}
}

func TestApplyDefaultsKeepsConfiguredValues(t *testing.T) {
	c := validContext()
	c.Nightly = &NightlyTrigger{StartHour: intPtr(0), DaysOfWeek: "1-5"}

	c.ApplyDefaults()

	require.NotNil(t, c.Nightly.StartHour)
	assert.Equal(t, 0, *c.Nightly.StartHour)
	assert.Equal(t, "1-5", c.Nightly.DaysOfWeek)
	assert.Equal(t, DefaultNightlyDaysOfMonth, c.Nightly.DaysOfMonth)
	assert.Equal(t, DefaultNightlyBranch, c.Nightly.Branch)
}

func TestLoadPartialNightlySectionAppliesDefaults(t *testing.T) {
	const tomlContent = `
config_version = 1

[GA]
  credentials = "c"
  service_account = "sa"
  project = "p"

[Beta]
  credentials = "c"
  service_account = "sa"
  project = "p"

[VCR]
  credentials = "c"
  service_account = "sa"
  project = "p"

[Shared]
  billing_account = "b"
  org = "o"
  region = "r"
  zone = "z"

[VCRStorage]
  vcr_bucket_name = "bucket"

[Nightly]
  days_of_week = "1-5"
`

	const hclContent = `
config_version = 1

ga {
  credentials     = "c"
  service_account = "sa"
  project         = "p"
}

beta {
  credentials     = "c"
  service_account = "sa"
  project         = "p"
}

vcr {
  credentials     = "c"
  service_account = "sa"
  project         = "p"
}

shared {
  billing_account = "b"
  org             = "o"
  region          = "r"
  zone            = "z"
}

vcr_storage {
  vcr_bucket_name = "bucket"
}

nightly {
  days_of_week = "1-5"
}
`

	testcases := []struct {
		filename string
		content  string
	}{
		{filename: "ciconf.toml", content: tomlContent},
		{filename: "ciconf.hcl", content: hclContent},
	}

	for _, tc := range testcases {
		t.Run(tc.filename, func(t *testing.T) {
			cfgPath := filepath.Join(t.TempDir(), tc.filename)
			require.NoError(t, os.WriteFile(cfgPath, []byte(tc.content), 0o600))

			c, err := Load(cfgPath, resolver.NewGoTemplate(filepath.Dir(cfgPath)))
			require.NoError(t, err)

			require.NotNil(t, c.Nightly)
			require.NotNil(t, c.Nightly.StartHour)
			assert.Equal(t, DefaultNightlyStartHour, *c.Nightly.StartHour)
			assert.Equal(t, "1-5", c.Nightly.DaysOfWeek)
			assert.Equal(t, DefaultNightlyDaysOfMonth, c.Nightly.DaysOfMonth)
			assert.Equal(t, DefaultNightlyBranch, c.Nightly.Branch)
		})
	}
}

func TestLoadNightlyStartHourZeroIsKept(t *testing.T) {
	c := validContext()
	c.Nightly = &NightlyTrigger{StartHour: intPtr(0)}

	cfgPath := filepath.Join(t.TempDir(), "ciconf.toml")
	require.NoError(t, c.ToFile(cfgPath))

	loaded, err := Load(cfgPath, resolver.NewGoTemplate(filepath.Dir(cfgPath)))
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Nightly.Hour())
}

func TestAcceptanceTestConfigs(t *testing.T) {
	c := validContext()
	c.GA.Project = "ga-project"
	c.Beta.Project = "beta-project"
	c.VCR.Project = "vcr-project"
	c.VCRStorage.InfraProject = "infra"

	ga := GetGaAcceptanceTestConfig(c)
	beta := GetBetaAcceptanceTestConfig(c)
	vcr := GetVcrAcceptanceTestConfig(c)

	assert.Equal(t, "ga-project", ga.Project)
	assert.Equal(t, "beta-project", beta.Project)
	assert.Equal(t, "vcr-project", vcr.Project)

	for _, accCfg := range []AccTestConfig{ga, beta, vcr} {
		assert.Equal(t, c.Shared.Region, accCfg.Region)
		assert.Equal(t, c.Shared.Org, accCfg.Org)
		assert.Equal(t, *c.Nightly, accCfg.Nightly)
	}

	assert.Empty(t, beta.VCRBucketName)
	assert.Equal(t, "bucket", vcr.VCRBucketName)
	assert.Equal(t, "infra", vcr.InfraProject)
}
