package main

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jobboard-api/pkg/helpers"
	"github.com/oksasatya/jobboard-api/pkg/mailer"
)

type requeuer interface {
	Requeue(ctx context.Context, d amqp.Delivery, attempt int) error
}

// settle acks, drops or requeues msg depending on the send result. A retry
// waits out the worker's backoff before it goes back on the queue.
func settle(ctx context.Context, w *mailer.Worker, q requeuer, msg amqp.Delivery, err error, logger *logrus.Logger) {
	if err == nil {
		_ = msg.Ack(false)
		return
	}
	if errors.Is(err, mailer.ErrPermanent) {
		logger.WithError(err).Warn("dropping email message")
		_ = msg.Nack(false, false)
		return
	}

	attempt := helpers.DeliveryAttempt(msg) + 1
	delay, ok := w.Backoff(attempt)
	if !ok {
		logger.WithError(err).WithField("attempts", attempt).Error("email send failed; giving up")
		_ = msg.Nack(false, false)
		return
	}
	logger.WithError(err).WithFields(logrus.Fields{"attempt": attempt, "delay": delay}).Warn("email send failed; retrying")

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		_ = msg.Nack(false, true)
		return
	case <-t.C:
	}
	if err := q.Requeue(ctx, msg, attempt); err != nil {
		logger.WithError(err).Warn("requeue failed")
		_ = msg.Nack(false, true)
	}
}
