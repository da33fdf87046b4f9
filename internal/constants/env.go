// Package constants provides centralized definitions of constants used throughout the application
package constants

// Environment variable names
const (
	// EnvServerPort is the environment variable containing the API server port
	EnvServerPort = "FLOW_PORT"

	// EnvServerAddress is the environment variable containing the API server address used by the CLI
	EnvServerAddress = "FLOW_SERVER_ADDRESS"

	// EnvDBHost is the environment variable containing the database host
	EnvDBHost = "FLOW_DB_HOST"

	// EnvDBPort is the environment variable containing the database port
	EnvDBPort = "FLOW_DB_PORT"

	// EnvDBUser is the environment variable containing the database user
	EnvDBUser = "FLOW_DB_USER"

	// EnvDBPassword is the environment variable containing the database password
	EnvDBPassword = "FLOW_DB_PASSWORD"

	// EnvDBName is the environment variable containing the database name
	EnvDBName = "FLOW_DB_NAME"

	// EnvLogLevel is the environment variable containing the log level
	EnvLogLevel = "LOG_LEVEL"
)
