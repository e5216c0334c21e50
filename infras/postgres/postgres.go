package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"roombook/config"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint addresses one postgres database.
type Endpoint struct {
	Username string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

func New(config *config.Config) *Connection {
	return &Connection{
		Read:  CreatePostgresConnection("read", ReadEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
		Write: CreatePostgresConnection("write", WriteEndpoint(config), config.DB.Postgres.MaxRetry, config.DB.Postgres.RetryWaitTime),
	}
}

// Close releases both pools.
func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed closing database connection")
		}
	}
}

// DBName returns the database name with prefix if configured.
func DBName(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func ReadEndpoint(config *config.Config) Endpoint {
	read := config.DB.Postgres.Read

	return Endpoint{
		Username: read.Username,
		Password: read.Password,
		Host:     read.Host,
		Port:     read.Port,
		Name:     DBName(config, read.Name),
		SSLMode:  read.SSLMode,
	}
}

func WriteEndpoint(config *config.Config) Endpoint {
	write := config.DB.Postgres.Write

	return Endpoint{
		Username: write.Username,
		Password: write.Password,
		Host:     write.Host,
		Port:     write.Port,
		Name:     DBName(config, write.Name),
		SSLMode:  write.SSLMode,
	}
}

// DSN renders the endpoint as a postgres URL. Extra parameters are appended to the query string.
func (e Endpoint) DSN(params url.Values) string {
	query := url.Values{}
	query.Set("sslmode", e.SSLMode)

	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     "/" + e.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// CreatePostgresConnection connects to the endpoint, retrying maxRetry times before giving up.
func CreatePostgresConnection(name string, endpoint Endpoint, maxRetry, waitTime int) *sqlx.DB {
	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN(nil))
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", endpoint.Host).
				Str("port", endpoint.Port).
				Str("dbName", endpoint.Name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", endpoint.Host).
			Str("port", endpoint.Port).
			Str("dbName", endpoint.Name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().Err(fmt.Errorf("connecting to %s database: %w", name, lastErr)).Msg("Giving up on database")

	return nil
}
