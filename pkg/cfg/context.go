package cfg

import (
	"fmt"
	"strings"
)

const (
	// Version identifies the format of the context configuration files
	// that the package can parse. Whenever an incompatible change is made,
	// the Version number is increased.
	Version int = 1

	DefaultNightlyBranch      = "refs/heads/main"
	DefaultNightlyStartHour   = 4
	DefaultNightlyDaysOfWeek  = "*"
	DefaultNightlyDaysOfMonth = "*"
)

// Context contains all parameters that are passed to the project builders.
// It is read-only after it has been loaded.
type Context struct {
	ConfigVersion int `toml:"config_version" comment:"Internal field, version of the ciconf context configuration format" hcl:"config_version,attr"`

	GA   Environment `toml:"GA" comment:"Test environment of the GA provider nightly tests" hcl:"ga,block"`
	Beta Environment `toml:"Beta" comment:"Test environment of the Beta provider nightly tests" hcl:"beta,block"`
	VCR  Environment `toml:"VCR" comment:"Test environment of the upstream and VCR recording builds" hcl:"vcr,block"`

	Shared     Shared          `toml:"Shared" comment:"Values that are the same in all test environments" hcl:"shared,block"`
	VCRStorage VCRStorage      `toml:"VCRStorage" comment:"Storage of VCR cassettes" hcl:"vcr_storage,block"`
	Nightly    *NightlyTrigger `toml:"Nightly,omitempty" comment:"Schedule of the nightly tests, defaults are used when the section is missing" hcl:"nightly,block"`

	filePath string
}

// Environment contains the values that differ between the GA, Beta and VCR
// test environments.
type Environment struct {
	Credentials          string `toml:"credentials" comment:"Credentials of the service account, usually a secure token of the CI server" hcl:"credentials,optional"`
	ServiceAccount       string `toml:"service_account" hcl:"service_account,optional"`
	Project              string `toml:"project" comment:"Google Cloud project in that the acceptance tests create resources" hcl:"project,optional"`
	ProjectNumber        string `toml:"project_number" hcl:"project_number,optional"`
	IdentityUser         string `toml:"identity_user" hcl:"identity_user,optional"`
	FirestoreProject     string `toml:"firestore_project" hcl:"firestore_project,optional"`
	MasterBillingAccount string `toml:"master_billing_account" hcl:"master_billing_account,optional"`
	Org2                 string `toml:"org2" hcl:"org2,optional"`
	ChronicleInstanceID  string `toml:"chronicle_instance_id" hcl:"chronicle_instance_id,optional"`
}

// Shared contains values that are the same in all test environments.
type Shared struct {
	BillingAccount  string `toml:"billing_account" hcl:"billing_account,optional"`
	BillingAccount2 string `toml:"billing_account2" hcl:"billing_account2,optional"`
	CustID          string `toml:"cust_id" hcl:"cust_id,optional"`
	Org             string `toml:"org" hcl:"org,optional"`
	OrgDomain       string `toml:"org_domain" hcl:"org_domain,optional"`
	Region          string `toml:"region" hcl:"region,optional"`
	Zone            string `toml:"zone" hcl:"zone,optional"`
}

// VCRStorage describes where VCR cassettes are stored.
type VCRStorage struct {
	InfraProject  string `toml:"infra_project" comment:"Project containing the cassette bucket" hcl:"infra_project,optional"`
	VCRBucketName string `toml:"vcr_bucket_name" hcl:"vcr_bucket_name,optional"`
}

// NightlyTrigger configures when the nightly tests are run.
type NightlyTrigger struct {
	Branch      string `toml:"branch" comment:"Branch that the nightly tests are run for" hcl:"branch,optional"`
	Disabled    bool   `toml:"disabled" comment:"Do not create schedule triggers for the nightly tests" hcl:"disabled,optional"`
	StartHour   *int   `toml:"start_hour,omitempty" comment:"Hour (UTC) at that the nightly tests start, 0-23" hcl:"start_hour,optional"`
	DaysOfWeek  string `toml:"days_of_week" comment:"Cron-like days of week expression" hcl:"days_of_week,optional"`
	DaysOfMonth string `toml:"days_of_month" comment:"Cron-like days of month expression" hcl:"days_of_month,optional"`
}

// DefaultNightlyTrigger returns the nightly trigger configuration that is
// used when none is configured.
func DefaultNightlyTrigger() *NightlyTrigger {
	return &NightlyTrigger{
		Branch:      DefaultNightlyBranch,
		StartHour:   intPtr(DefaultNightlyStartHour),
		DaysOfWeek:  DefaultNightlyDaysOfWeek,
		DaysOfMonth: DefaultNightlyDaysOfMonth,
	}
}

// Hour returns the configured start hour, if none is set
// DefaultNightlyStartHour is returned.
func (n *NightlyTrigger) Hour() int {
	if n.StartHour == nil {
		return DefaultNightlyStartHour
	}

	return *n.StartHour
}

func intPtr(i int) *int {
	return &i
}

// FilePath returns the path of the file the context was loaded from.
func (c *Context) FilePath() string {
	return c.filePath
}

// NightlyTriggerOrDefault returns the configured nightly trigger, if none
// is configured the default is returned.
func (c *Context) NightlyTriggerOrDefault() NightlyTrigger {
	if c.Nightly == nil {
		return *DefaultNightlyTrigger()
	}

	return *c.Nightly
}

// ApplyDefaults sets unset optional values to their defaults.
func (c *Context) ApplyDefaults() {
	if c.Nightly == nil {
		c.Nightly = DefaultNightlyTrigger()
		return
	}

	if c.Nightly.StartHour == nil {
		c.Nightly.StartHour = intPtr(DefaultNightlyStartHour)
	}

	if c.Nightly.Branch == "" {
		c.Nightly.Branch = DefaultNightlyBranch
	}

	if c.Nightly.DaysOfWeek == "" {
		c.Nightly.DaysOfWeek = DefaultNightlyDaysOfWeek
	}

	if c.Nightly.DaysOfMonth == "" {
		c.Nightly.DaysOfMonth = DefaultNightlyDaysOfMonth
	}
}

// ToFile writes the context configuration in TOML format to filepath.
func (c *Context) ToFile(filepath string, opts ...toFileOpt) error {
	return toFile(c, filepath, opts...)
}

// Resolve runs the resolver on all string values of the context.
func (c *Context) Resolve(resolver Resolver) error {
	envs := []struct {
		name string
		env  *Environment
	}{
		{"GA", &c.GA},
		{"Beta", &c.Beta},
		{"VCR", &c.VCR},
	}

	for _, e := range envs {
		if err := resolveFields(resolver, e.env.fields()); err != nil {
			return fieldErrorWrap(err, e.name)
		}
	}

	if err := resolveFields(resolver, c.Shared.fields()); err != nil {
		return fieldErrorWrap(err, "Shared")
	}

	if err := resolveFields(resolver, c.VCRStorage.fields()); err != nil {
		return fieldErrorWrap(err, "VCRStorage")
	}

	if c.Nightly != nil {
		if err := resolveFields(resolver, c.Nightly.fields()); err != nil {
			return fieldErrorWrap(err, "Nightly")
		}
	}

	return nil
}

// Validate validates the context configuration.
// It should be called after Resolve() and ApplyDefaults().
func (c *Context) Validate() error {
	if c.ConfigVersion == 0 {
		return newFieldError("can not be unset or 0", "config_version")
	}

	if c.ConfigVersion != Version {
		return fmt.Errorf("incompatible configuration file\n"+
			"config_version value is %d, expecting version: %d", c.ConfigVersion, Version)
	}

	envs := []struct {
		name string
		env  *Environment
	}{
		{"GA", &c.GA},
		{"Beta", &c.Beta},
		{"VCR", &c.VCR},
	}

	for _, e := range envs {
		if err := e.env.validate(); err != nil {
			return fieldErrorWrap(err, e.name)
		}
	}

	if err := c.Shared.validate(); err != nil {
		return fieldErrorWrap(err, "Shared")
	}

	if err := c.VCRStorage.validate(); err != nil {
		return fieldErrorWrap(err, "VCRStorage")
	}

	if c.Nightly != nil {
		if err := c.Nightly.validate(); err != nil {
			return fieldErrorWrap(err, "Nightly")
		}
	}

	return nil
}

type namedField struct {
	name string
	val  *string
}

func resolveFields(resolver Resolver, fields []namedField) error {
	for _, f := range fields {
		var err error

		if *f.val, err = resolver.Resolve(*f.val); err != nil {
			return fieldErrorWrap(err, f.name)
		}
	}

	return nil
}

func requireFields(fields []namedField, required ...string) error {
	for _, f := range fields {
		for _, r := range required {
			if f.name == r && strings.TrimSpace(*f.val) == "" {
				return newFieldError("can not be empty", f.name)
			}
		}
	}

	return nil
}

func (e *Environment) fields() []namedField {
	return []namedField{
		{"credentials", &e.Credentials},
		{"service_account", &e.ServiceAccount},
		{"project", &e.Project},
		{"project_number", &e.ProjectNumber},
		{"identity_user", &e.IdentityUser},
		{"firestore_project", &e.FirestoreProject},
		{"master_billing_account", &e.MasterBillingAccount},
		{"org2", &e.Org2},
		{"chronicle_instance_id", &e.ChronicleInstanceID},
	}
}

func (e *Environment) validate() error {
	return requireFields(e.fields(), "credentials", "service_account", "project")
}

func (s *Shared) fields() []namedField {
	return []namedField{
		{"billing_account", &s.BillingAccount},
		{"billing_account2", &s.BillingAccount2},
		{"cust_id", &s.CustID},
		{"org", &s.Org},
		{"org_domain", &s.OrgDomain},
		{"region", &s.Region},
		{"zone", &s.Zone},
	}
}

func (s *Shared) validate() error {
	return requireFields(s.fields(), "billing_account", "org", "region", "zone")
}

func (v *VCRStorage) fields() []namedField {
	return []namedField{
		{"infra_project", &v.InfraProject},
		{"vcr_bucket_name", &v.VCRBucketName},
	}
}

func (v *VCRStorage) validate() error {
	return requireFields(v.fields(), "vcr_bucket_name")
}

func (n *NightlyTrigger) fields() []namedField {
	return []namedField{
		{"branch", &n.Branch},
		{"days_of_week", &n.DaysOfWeek},
		{"days_of_month", &n.DaysOfMonth},
	}
}

func (n *NightlyTrigger) validate() error {
	if n.StartHour != nil && (*n.StartHour < 0 || *n.StartHour > 23) {
		return newFieldError(fmt.Sprintf("must be in range [0, 23], is %d", *n.StartHour), "start_hour")
	}

	if err := requireFields(n.fields(), "branch", "days_of_week", "days_of_month"); err != nil {
		return err
	}

	if !strings.HasPrefix(n.Branch, "refs/") {
		return newFieldError(fmt.Sprintf("must be a full git reference starting with \"refs/\", is %q", n.Branch), "branch")
	}

	return nil
}
