package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/pmflow/flow/config"
	"github.com/pmflow/flow/internal/app"
	"github.com/pmflow/flow/internal/constants"
	"github.com/pmflow/flow/internal/db"
	"github.com/pmflow/flow/internal/logger"
)

func main() {
	// A missing .env file is fine, env vars may come from the environment
	_ = godotenv.Load()

	logger.InitializeAndConfigure()

	database, err := db.New(db.Options{
		Host:     config.GetEnv(constants.EnvDBHost, db.DefaultHost),
		Port:     config.GetEnvInt(constants.EnvDBPort, db.DefaultPort),
		User:     config.GetEnv(constants.EnvDBUser, db.DefaultUser),
		Password: config.GetEnv(constants.EnvDBPassword, db.DefaultPassword),
		DBName:   config.GetEnv(constants.EnvDBName, db.DefaultDBName),
	})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	port := config.GetEnvInt(constants.EnvServerPort, 8080)
	logger.Infof("Starting API server on port %d", port)

	if err := app.New(database).Listen(fmt.Sprintf(":%d", port)); err != nil {
		logger.Fatalf("Server stopped: %v", err)
	}
}
