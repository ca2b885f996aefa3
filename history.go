package faqbot

import "sync"

// DefaultHistorySize is the number of replies a History remembers.
const DefaultHistorySize = 10

// History maps recent user message IDs to the IDs of the bot's replies so
// a reply can be withdrawn when the user recalls their message.
// Older records are dropped once the history is full.
type History struct {
	mu    sync.Mutex
	size  int
	order []string
	items map[string]string
}

// NewHistory returns a History that keeps at most size records.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:  size,
		items: make(map[string]string),
	}
}

// Push records that replyID answered messageID.
// Pushing an existing messageID moves it to the newest position.
func (h *History) Push(messageID, replyID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.items[messageID]; ok {
		h.remove(messageID)
	}
	for len(h.order) >= h.size {
		oldest := h.order[0]
		h.order = h.order[1:]
		delete(h.items, oldest)
	}
	h.order = append(h.order, messageID)
	h.items[messageID] = replyID
}

// Pop removes the record for messageID and returns its reply ID.
func (h *History) Pop(messageID string) (replyID string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	replyID, ok = h.items[messageID]
	if ok {
		h.remove(messageID)
	}
	return replyID, ok
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.order)
}

func (h *History) remove(messageID string) {
	delete(h.items, messageID)
	for i, id := range h.order {
		if id == messageID {
			h.order = append(h.order[:i], h.order[i+1:]...)
			return
		}
	}
}
