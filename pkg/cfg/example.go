package cfg

// ExampleContext returns an exemplary context configuration.
// Secrets and environment specific values reference environment variables.
func ExampleContext() *Context {
	return &Context{
		ConfigVersion: Version,

		GA:   exampleEnvironment("GA"),
		Beta: exampleEnvironment("BETA"),
		VCR:  exampleEnvironment("VCR"),

		Shared: Shared{
			BillingAccount:  `{{ env "GOOGLE_BILLING_ACCOUNT" }}`,
			BillingAccount2: `{{ envOr "GOOGLE_BILLING_ACCOUNT_2" "" }}`,
			CustID:          `{{ envOr "GOOGLE_CUST_ID" "" }}`,
			Org:             `{{ env "GOOGLE_ORG" }}`,
			OrgDomain:       `{{ envOr "GOOGLE_ORG_DOMAIN" "" }}`,
			Region:          "us-central1",
			Zone:            "us-central1-a",
		},

		VCRStorage: VCRStorage{
			InfraProject:  `{{ envOr "GOOGLE_INFRA_PROJECT" "" }}`,
			VCRBucketName: `{{ env "VCR_BUCKET_NAME" }}`,
		},

		Nightly: DefaultNightlyTrigger(),
	}
}

func exampleEnvironment(suffix string) Environment {
	return Environment{
		Credentials:          `{{ env "GOOGLE_CREDENTIALS_` + suffix + `" }}`,
		ServiceAccount:       `{{ env "GOOGLE_SERVICE_ACCOUNT_` + suffix + `" }}`,
		Project:              `{{ env "GOOGLE_PROJECT_` + suffix + `" }}`,
		ProjectNumber:        `{{ envOr "GOOGLE_PROJECT_NUMBER_` + suffix + `" "" }}`,
		IdentityUser:         `{{ envOr "GOOGLE_IDENTITY_USER_` + suffix + `" "" }}`,
		FirestoreProject:     `{{ envOr "GOOGLE_FIRESTORE_PROJECT_` + suffix + `" "" }}`,
		MasterBillingAccount: `{{ envOr "GOOGLE_MASTER_BILLING_ACCOUNT_` + suffix + `" "" }}`,
		Org2:                 `{{ envOr "GOOGLE_ORG_2_` + suffix + `" "" }}`,
		ChronicleInstanceID:  `{{ envOr "GOOGLE_CHRONICLE_INSTANCE_ID_` + suffix + `" "" }}`,
	}
}
