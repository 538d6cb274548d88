package utils

import (
	"fmt"
	"log"

	"techstorm/config"

	"github.com/rollbar/rollbar-go"
)

var reporterEnabled bool

// InitReporter turns on Rollbar reporting when ROLLBAR_TOKEN is set
func InitReporter() {
	cfg := config.AppConfig
	if cfg.RollbarToken == "" {
		log.Println("[REPORTER] ROLLBAR_TOKEN not set, errors are only logged")
		return
	}

	rollbar.SetToken(cfg.RollbarToken)
	rollbar.SetEnvironment(cfg.AppEnv)
	rollbar.SetServerHost("techstorm-api")
	rollbar.SetEnabled(true)
	reporterEnabled = true
	log.Println("[REPORTER] Rollbar reporting enabled")
}

// CloseReporter flushes pending reports
func CloseReporter() {
	if reporterEnabled {
		rollbar.Close()
	}
}

// ReportError logs err with context and forwards it to Rollbar when enabled
func ReportError(err error, context string) {
	if err == nil {
		return
	}
	log.Printf("[ERROR] %s: %+v", context, err)
	if reporterEnabled {
		rollbar.Error(err, map[string]interface{}{"context": context})
	}
}

// ReportRequestError is ReportError with the request line and caller attached
func ReportRequestError(err error, method, url string, userID interface{}) {
	if err == nil {
		return
	}
	log.Printf("[ERROR] %s %s (user %v): %+v", method, url, userID, err)
	if reporterEnabled {
		rollbar.Error(err, map[string]interface{}{
			"request": fmt.Sprintf("%s %s", method, url),
			"user_id": userID,
		})
	}
}
