package mock

import (
	"context"

	"github.com/fwojciec/faqbot"
)

var _ faqbot.Handler = (*Handler)(nil)

// Handler is a mock implementation of faqbot.Handler.
type Handler struct {
	HandleFn func(ctx context.Context, msg *faqbot.Message) (*faqbot.Reply, error)
}

func (h *Handler) Handle(ctx context.Context, msg *faqbot.Message) (*faqbot.Reply, error) {
	return h.HandleFn(ctx, msg)
}
