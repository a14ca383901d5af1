package main

import (
	"github.com/joho/godotenv"

	"github.com/afya-care/monitoring/api"
)

func main() {
	// Local development convenience; in deployment the environment is
	// provided by the orchestrator
	_ = godotenv.Load()

	api.MainLoop()
}
