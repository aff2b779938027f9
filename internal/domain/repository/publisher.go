package repository

import "context"

// Publisher queues a message for asynchronous delivery (reset codes, status notifications).
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
