// Package ctxtest provides context configurations for tests.
package ctxtest

import "github.com/simplesurance/ciconf/pkg/cfg"

// Configuration returns a valid, resolved context configuration with
// placeholder values.
func Configuration() *cfg.Context {
	c := cfg.Context{
		ConfigVersion: cfg.Version,
		GA:            environment("ga"),
		Beta:          environment("beta"),
		VCR:           environment("vcr"),
		Shared: cfg.Shared{
			BillingAccount:  "billingAccount",
			BillingAccount2: "billingAccount2",
			CustID:          "custId",
			Org:             "org",
			OrgDomain:       "orgDomain",
			Region:          "region",
			Zone:            "zone",
		},
		VCRStorage: cfg.VCRStorage{
			InfraProject:  "infraProject",
			VCRBucketName: "vcrBucketName",
		},
	}

	c.ApplyDefaults()

	return &c
}

func environment(name string) cfg.Environment {
	return cfg.Environment{
		Credentials:          "credentials" + name,
		ServiceAccount:       "serviceAccount" + name,
		Project:              "project" + name,
		ProjectNumber:        "projectNumber" + name,
		IdentityUser:         "identityUser" + name,
		FirestoreProject:     "firestoreProject" + name,
		MasterBillingAccount: "masterBillingAccount" + name,
		Org2:                 "org2" + name,
		ChronicleInstanceID:  "chronicleInstanceId" + name,
	}
}
