package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/pmflow/flow/cmd/cli/commands"
)

func main() {
	// A missing .env file is fine, env vars may come from the environment
	_ = godotenv.Load()

	if err := commands.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
