package main

import (
	"context"
	"os"
	"shop_admin_server/config"
	"shop_admin_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/joho/godotenv"
)

var logger *gecho.Logger
var cfg *structs.Config

// init function to load environment variables and initialize logger
func init() {
	envErr := godotenv.Load()

	cfg = config.GetConfig()
	logger = config.InitializeLogger()

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Command failed", gecho.Field("error", err))
	}
}
