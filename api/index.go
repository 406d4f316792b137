package handler

import (
	"net/http"

	"furk/config"
	"furk/di"
	"furk/shared/logger"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()
	app.Handler().ServeHTTP(w, r)
}
