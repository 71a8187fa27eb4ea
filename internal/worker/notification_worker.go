package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/lead-portal/internal/service"
)

// StartNotificationWorker subscribes the notification service to the domain
// event stream. Registration happens once at boot, before the HTTP listener
// starts accepting requests.
func StartNotificationWorker(logger *zap.Logger, notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	logger.Info("notification handlers registered")
}
