// Package notify fires best-effort desktop notifications. A missing
// notifier binary or denied permission is a silent no-op, never an error.
package notify

import (
	"os/exec"

	"github.com/existflow/iplan/internal/logger"
)

// Send shows a notification with the given title and body, if a notifier
// is available on this system.
func Send(title, body string) {
	path, err := exec.LookPath("notify-send")
	if err != nil {
		logger.Debug("No notifier available, skipping notification")
		return
	}
	if err := exec.Command(path, title, body).Run(); err != nil {
		logger.Debug("Notification failed", logger.F("error", err))
	}
}
