// Package handler exposes the room booking router as a single serverless function.
package handler

import (
	"net/http"
	"sync"

	"roombook/config"
	"roombook/di"
	"roombook/shared/logger"
)

var (
	router http.Handler
	once   sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())

		router = di.InitializeService()
	})

	r.RequestURI = r.URL.String()
	router.ServeHTTP(w, r)
}
