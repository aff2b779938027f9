package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrPermanent marks a message that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent email failure")

// Worker turns queued EmailJob payloads into sent emails.
type Worker struct {
	Sender      Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration

	// MaxAttempts bounds sends per message, the first one included.
	MaxAttempts int
	RetryBase   time.Duration
	RetryMax    time.Duration
}

func NewWorker(sender Sender, logger *logrus.Logger) *Worker {
	return &Worker{
		Sender:      sender,
		Logger:      logger,
		SendTimeout: 15 * time.Second,
		MaxAttempts: 6,
		RetryBase:   2 * time.Second,
		RetryMax:    time.Minute,
	}
}

// Backoff reports the wait before retry number attempt (1 for the first
// retry), doubling from RetryBase up to RetryMax. ok is false once the
// message has used up MaxAttempts.
func (w *Worker) Backoff(attempt int) (delay time.Duration, ok bool) {
	if attempt < 1 {
		attempt = 1
	}
	if attempt >= w.MaxAttempts {
		return 0, false
	}
	delay = w.RetryBase
	for i := 1; i < attempt && delay < w.RetryMax; i++ {
		delay *= 2
	}
	return min(delay, w.RetryMax), true
}

// Handle decodes, renders and sends one message body. Decode and render
// failures wrap ErrPermanent; send failures are retryable.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrPermanent, err)
	}
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrPermanent)
	}
	if err := job.Render(); err != nil {
		return fmt.Errorf("%w: render %s: %v", ErrPermanent, job.Template, err)
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, job.Subject, job.Text, job.HTML); err != nil {
		return err
	}
	w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	return nil
}
