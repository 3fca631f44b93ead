package notify

import (
	"fmt"

	"github.com/gregdel/pushover"
	"github.com/sirupsen/logrus"
)

const (
	PriorityNormal = 0
	PriorityHigh   = 1
)

type Notifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
	logger    *logrus.Logger
}

func NewNotifier(token, userKey string, logger *logrus.Logger) *Notifier {
	return &Notifier{
		app:       pushover.New(token),
		recipient: pushover.NewRecipient(userKey),
		logger:    logger,
	}
}

func (n *Notifier) Send(title, message string) error {
	return n.SendWithPriority(title, message, PriorityNormal)
}

func (n *Notifier) SendWithPriority(title, message string, priority int) error {
	msg := pushover.NewMessageWithTitle(message, title)
	msg.Priority = priority

	resp, err := n.app.SendMessage(msg, n.recipient)
	if err != nil {
		return fmt.Errorf("sending pushover notification: %w", err)
	}

	n.logger.WithFields(logrus.Fields{
		"title":      title,
		"status":     resp.Status,
		"request_id": resp.ID,
	}).Debug("notification sent")

	return nil
}

func (n *Notifier) SendJourneyDelay(service, from, to string, delayMinutes int, expectedTime, platform string) error {
	title := "Journey Delay Alert"
	body := fmt.Sprintf("%s from %s to %s is delayed by %d minutes.\nExpected: %s, Platform: %s",
		service, from, to, delayMinutes, expectedTime, platform)
	return n.SendWithPriority(title, body, PriorityHigh)
}

func (n *Notifier) SendJourneyOnTime(service, from, to, departureTime, platform string) error {
	title := "Journey Status"
	body := fmt.Sprintf("%s from %s to %s is running on time.\nDeparture: %s, Platform: %s",
		service, from, to, departureTime, platform)
	return n.Send(title, body)
}

func (n *Notifier) SendNoConnection(from, to string) error {
	title := "Journey Alert"
	body := fmt.Sprintf("No connection found from %s to %s.", from, to)
	return n.SendWithPriority(title, body, PriorityHigh)
}
