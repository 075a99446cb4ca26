package notify

import (
	"bytes"
	"encoding/json"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/httpclient"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"go.uber.org/zap"
)

// PostAsync delivers a notification payload to a webhook URL without blocking
// the caller. The webhook side is responsible for actual email delivery; this
// service only generates and hands off the payload. Failures are logged and
// never retried (single-attempt semantics).
func PostAsync(webhookURL, template string, payload any, httpClient httpclient.Client) {
	if webhookURL == "" {
		// No delivery webhook configured, skip silently
		return
	}

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to encode notification payload",
				zap.Error(err),
				zap.String("template", template))
			return
		}

		resp, err := httpClient.Post(webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			logger.Error("Failed to deliver notification payload",
				zap.Error(err),
				zap.String("template", template),
				zap.String("url", webhookURL))
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			logger.Info("Notification payload delivered",
				zap.String("template", template),
				zap.Int("status_code", resp.StatusCode))
		} else {
			logger.Warn("Notification webhook returned non-success status",
				zap.String("template", template),
				zap.Int("status_code", resp.StatusCode))
		}
	}()
}
