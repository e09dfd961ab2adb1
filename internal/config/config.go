package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	// Path of the SQLite database file. ":memory:" works for local hacking.
	DatabasePath string `env:"DATABASE_PATH" envDefault:"wastewise.db"`
	JWTSecret    string `env:"JWT_SECRET" envDefault:"dev-only-secret"`

	Midtrans  Midtrans  `envPrefix:"MIDTRANS_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
}

type Midtrans struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://app.sandbox.midtrans.com"`
	ServerKey  string `env:"SERVER_KEY"`
	ClientKey  string `env:"CLIENT_KEY"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
	// Vaulted payment token charged by the credit-card method. The demo has
	// no card-entry UI, so one sandbox token stands in for the buyer's card.
	DemoPaymentToken string `env:"DEMO_PAYMENT_TOKEN"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
