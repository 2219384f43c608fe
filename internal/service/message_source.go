package service

import "context"

const MessageSourceService = "message_source"

// MessageSource produces the message a MessagePrinter writes.
type MessageSource interface {
	GetMessage(ctx context.Context) (string, error)
}

// MessageSourceFunc adapts a function to MessageSource.
type MessageSourceFunc func(ctx context.Context) (string, error)

func (f MessageSourceFunc) GetMessage(ctx context.Context) (string, error) {
	return f(ctx)
}
