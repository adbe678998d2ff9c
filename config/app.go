package config

type App struct {
	Port           string `env:"APP_PORT" default:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	Env            string `env:"APP_ENV" default:"dev"`
	PageLimit      int    `env:"PAGE_LIMIT" default:"10"`
	Replicated     bool   `env:"REPLICATED" default:"0"`
	MailAPIKey     string `env:"MAIL_API_KEY"`
	MailDomain     string `env:"MAIL_DOMAIN" default:"mg.ecobnb.app"`
	MailFrom       string `env:"MAIL_FROM" default:"no-reply@ecobnb.app"`
	VerifyURL      string `env:"VERIFY_URL" default:"https://ecobnb.app/verify"`
	DefaultEmail   string `env:"DEFAULT_EMAIL" default:"admin@ecobnb.app"`
	RemindInterval int    `env:"REMIND_INTERVAL_MIN" default:"60"`
}
