package main

import (
	"roombook/config"
	"roombook/di"
	"roombook/shared/logger"
)

// @title Room Booking API
// @version 1.0
// @description Meeting room catalogue and conflict-free room bookings.
// @BasePath /
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
