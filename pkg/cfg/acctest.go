package cfg

// AccTestConfig contains the values that acceptance test builds of one test
// environment are parametrized with.
type AccTestConfig struct {
	BillingAccount       string
	BillingAccount2      string
	ChronicleInstanceID  string
	Credentials          string
	CustID               string
	FirestoreProject     string
	IdentityUser         string
	MasterBillingAccount string
	Org                  string
	Org2                 string
	OrgDomain            string
	Project              string
	ProjectNumber        string
	Region               string
	ServiceAccount       string
	Zone                 string

	// InfraProject and VCRBucketName are only set for the VCR environment.
	InfraProject  string
	VCRBucketName string

	Nightly NightlyTrigger
}

func newAccTestConfig(env *Environment, c *Context) AccTestConfig {
	return AccTestConfig{
		BillingAccount:       c.Shared.BillingAccount,
		BillingAccount2:      c.Shared.BillingAccount2,
		ChronicleInstanceID:  env.ChronicleInstanceID,
		Credentials:          env.Credentials,
		CustID:               c.Shared.CustID,
		FirestoreProject:     env.FirestoreProject,
		IdentityUser:         env.IdentityUser,
		MasterBillingAccount: env.MasterBillingAccount,
		Org:                  c.Shared.Org,
		Org2:                 env.Org2,
		OrgDomain:            c.Shared.OrgDomain,
		Project:              env.Project,
		ProjectNumber:        env.ProjectNumber,
		Region:               c.Shared.Region,
		ServiceAccount:       env.ServiceAccount,
		Zone:                 c.Shared.Zone,
		Nightly:              c.NightlyTriggerOrDefault(),
	}
}

// GetGaAcceptanceTestConfig returns the configuration of the GA test
// environment.
func GetGaAcceptanceTestConfig(c *Context) AccTestConfig {
	return newAccTestConfig(&c.GA, c)
}

// GetBetaAcceptanceTestConfig returns the configuration of the Beta test
// environment.
func GetBetaAcceptanceTestConfig(c *Context) AccTestConfig {
	return newAccTestConfig(&c.Beta, c)
}

// GetVcrAcceptanceTestConfig returns the configuration of the VCR test
// environment, it is used for upstream testing and VCR recordings.
func GetVcrAcceptanceTestConfig(c *Context) AccTestConfig {
	res := newAccTestConfig(&c.VCR, c)
	res.InfraProject = c.VCRStorage.InfraProject
	res.VCRBucketName = c.VCRStorage.VCRBucketName

	return res
}
