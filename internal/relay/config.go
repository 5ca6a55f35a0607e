package relay

import "time"

// Relay drivers selectable through RELAY_DRIVER.
const (
	DriverHTTP     = "http"     // form relay endpoint
	DriverPostmark = "postmark" // Postmark through pkg/email
	DriverDev      = "dev"      // writes messages to EMAIL_DEV_DIR
)

// Config selects and configures the relay. Endpoint and APIKey apply to the
// http driver; To is the recipient mailbox for the postmark and dev drivers.
type Config struct {
	Driver   string        `env:"RELAY_DRIVER" envDefault:"dev"`
	Endpoint string        `env:"RELAY_ENDPOINT"`
	APIKey   string        `env:"RELAY_API_KEY"`
	Timeout  time.Duration `env:"RELAY_TIMEOUT" envDefault:"10s"`
	To       string        `env:"RELAY_TO" envDefault:"office@cornerstone.church"`
}
