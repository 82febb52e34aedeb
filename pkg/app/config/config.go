package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envPrefix = "marketplace"

type Config struct {
	ServeHTTPAddress string `envconfig:"serve_http_address" default:":8080"`

	DBHost     string `envconfig:"db_host" default:"localhost"`
	DBPort     string `envconfig:"db_port" default:"3306"`
	DBUser     string `envconfig:"db_user" required:"true"`
	DBPassword string `envconfig:"db_password" required:"true"`
	DBName     string `envconfig:"db_name" required:"true"`

	// AMQPURL enables event publication to RabbitMQ when set; events go
	// to the log otherwise.
	AMQPURL string `envconfig:"amqp_url"`
}

func Load() (*Config, error) {
	c := new(Config)
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}
	return c, nil
}

// DSN builds the MySQL connection string. parseTime maps DATETIME columns
// to time.Time; multiStatements is required by the migration runner.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
