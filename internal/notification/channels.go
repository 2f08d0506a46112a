package notification

import (
	"go.uber.org/zap"

	"storefront/internal/models"
)

// EmailChannel delivers order updates by email. Customers without an email
// address are silently skipped.
type EmailChannel struct {
	log *zap.SugaredLogger
}

func NewEmailChannel(log *zap.SugaredLogger) *EmailChannel {
	return &EmailChannel{log: log}
}

func (c *EmailChannel) Notify(order *models.Order, message string) error {
	if order.Customer == nil || order.Customer.Email == "" {
		return nil
	}
	c.log.Infow("sending email", "to", order.Customer.Email, "order", order.ID, "body", message)
	return nil
}

// SMSChannel delivers order updates by SMS when the customer has a phone
// number on file.
type SMSChannel struct {
	log *zap.SugaredLogger
}

func NewSMSChannel(log *zap.SugaredLogger) *SMSChannel {
	return &SMSChannel{log: log}
}

func (c *SMSChannel) Notify(order *models.Order, message string) error {
	if order.Customer == nil || order.Customer.Phone == "" {
		return nil
	}
	c.log.Infow("sending sms", "to", order.Customer.Phone, "order", order.ID, "body", message)
	return nil
}

// PushChannel delivers order updates as mobile push notifications, addressed
// by customer id.
type PushChannel struct {
	log *zap.SugaredLogger
}

func NewPushChannel(log *zap.SugaredLogger) *PushChannel {
	return &PushChannel{log: log}
}

func (c *PushChannel) Notify(order *models.Order, message string) error {
	if order.Customer == nil {
		return nil
	}
	c.log.Infow("sending push", "customer", order.Customer.ID, "order", order.ID, "body", message)
	return nil
}
