package config

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`

	// ClientURL is the browser-facing frontend origin used for Stripe
	// redirects. PublicURL is this server's own externally reachable
	// base, used for the checkout cancel callback.
	ClientURL string `yaml:"client_url"`
	PublicURL string `yaml:"public_url"`

	StripeSecretKey     string `yaml:"stripe_secret_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`

	Supabase SupabaseConfig `yaml:"supabase"`
}

type SupabaseConfig struct {
	JWTSecret  string `yaml:"jwt_secret"`
	ProjectURL string `yaml:"project_url"`
}
