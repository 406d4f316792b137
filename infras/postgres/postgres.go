package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"furk/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection splits reads from writes. With a single database both handles
// point at the same server; the repositories do not need to know.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	pg := config.DB.Postgres

	return &Connection{
		Read: connect("read",
			pg.Read.Username, pg.Read.Password, pg.Read.Host, pg.Read.Port,
			prefixed(config, pg.Read.Name), pg.Read.SSLMode,
			pg.MaxRetry, pg.RetryWaitTime),
		Write: connect("write",
			pg.Write.Username, pg.Write.Password, pg.Write.Host, pg.Write.Port,
			prefixed(config, pg.Write.Name), pg.Write.SSLMode,
			pg.MaxRetry, pg.RetryWaitTime),
	}
}

func prefixed(config *config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// connect retries with a fixed wait between attempts and returns nil when
// every attempt fails; the first query will then surface the outage.
func connect(role, username, password, host, port, dbName, sslMode string, maxRetry, waitTime int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)

	for attempt := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.Info().
				Str("role", role).
				Str("host", host).
				Str("port", port).
				Str("dbName", dbName).
				Msg("Connected to database")

			sqlDB.SetMaxIdleConns(maxIdleConnections)
			sqlDB.SetMaxOpenConns(maxOpenConnections)

			return sqlDB
		}

		log.Error().
			Err(err).
			Str("role", role).
			Str("host", host).
			Str("port", port).
			Str("dbName", dbName).
			Int("attempt", attempt+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil
}
