package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/lead-portal/internal/config"
	"github.com/spec-kit/lead-portal/internal/events"
)

// NotificationService handles emitting admin notifications for domain events.
// Delivery is best-effort: failures are logged and never propagate back into
// the request that triggered the event.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	client     *http.Client
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		client:     &http.Client{Timeout: cfg.Timeout()},
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicationSubmitted, n.handleApplicationSubmitted)
	n.dispatcher.Subscribe(events.EventApplicationStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventCallbackRequested, n.handleCallbackRequested)
}

func (n *NotificationService) handleApplicationSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ApplicationSubmitted", zap.Int64("application_id", event.ApplicationID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.ApplicationSubmittedPayload)
	if !ok {
		return nil
	}
	n.sendEmailStub(event)
	n.sendWebhook(ctx, event)
	n.sendTelegram(ctx, applicationSubmittedText(event.ApplicationID, payload))
	return nil
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("ApplicationStatusChanged", zap.Int64("application_id", event.ApplicationID), zap.Any("payload", event.Payload))
	n.sendWebhook(ctx, event)
	return nil
}

func (n *NotificationService) handleCallbackRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("CallbackRequested", zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.CallbackRequestedPayload)
	if !ok {
		return nil
	}
	n.sendTelegram(ctx, fmt.Sprintf("Запрос обратного звонка: %s %s", payload.Phone, payload.PreferredTime))
	return nil
}

// sendEmailStub stands in for SMTP delivery; the channel is wired but the
// transport is configuration-gated logging only.
func (n *NotificationService) sendEmailStub(event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || strings.TrimSpace(n.cfg.EmailTo) == "" {
		return
	}
	n.logger.Debug("sendEmailStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", n.cfg.EmailTo),
		zap.Int64("application_id", event.ApplicationID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhook(ctx context.Context, event events.Event) {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if url == "" {
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("webhook marshal failed", zap.Error(err))
		return
	}
	n.post(ctx, url, body, "webhook")
}

func (n *NotificationService) sendTelegram(ctx context.Context, text string) {
	token := strings.TrimSpace(n.cfg.TelegramBotToken)
	chatID := strings.TrimSpace(n.cfg.TelegramChatID)
	if token == "" || chatID == "" {
		return
	}
	body, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil {
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", token)
	n.post(ctx, url, body, "telegram")
}

func (n *NotificationService) post(ctx context.Context, url string, body []byte, channel string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("notification request build failed", zap.String("channel", channel), zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn("notification delivery failed", zap.String("channel", channel), zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Warn("notification delivery rejected",
			zap.String("channel", channel),
			zap.Int("status", resp.StatusCode))
	}
}

func applicationSubmittedText(applicationID int64, payload events.ApplicationSubmittedPayload) string {
	text := fmt.Sprintf("🏠 <b>Новая заявка #%d</b>\n\n<b>Услуга:</b> %s\n<b>Клиент:</b> %s\n<b>Телефон:</b> %s\n<b>Email:</b> %s",
		applicationID, payload.Service, payload.Name, payload.Phone, payload.Email)
	if payload.Message != "" {
		text += "\n<b>Сообщение:</b>\n" + payload.Message
	}
	return text
}
