package editor

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-portfolio/pkg/api"
)

// MessageFilter selects which inbox messages are shown.
type MessageFilter string

const (
	FilterAll    MessageFilter = "all"
	FilterUnread MessageFilter = "unread"
	FilterRead   MessageFilter = "read"
)

// MessageAPI is the remote surface the inbox drives.
type MessageAPI interface {
	ContactMessages(ctx context.Context, limit int) ([]api.ContactMessage, error)
	MarkMessageRead(ctx context.Context, id int) error
	DeleteContactMessage(ctx context.Context, id int) error
}

var _ MessageAPI = (*api.Client)(nil)

// Inbox is the contact-message controller: list, filter, select (which marks
// unread messages read best-effort), and two-step delete.
type Inbox struct {
	remote MessageAPI
	log    *zap.Logger

	messages    []api.ContactMessage
	selected    int
	filter      MessageFilter
	loading     bool
	banner      string
	deleteArmed int
}

// InboxOption configures an Inbox.
type InboxOption func(*Inbox)

// WithInboxLogger routes diagnostics to log.
func WithInboxLogger(log *zap.Logger) InboxOption {
	return func(in *Inbox) {
		if log != nil {
			in.log = log
		}
	}
}

// NewInbox builds an inbox over the given remote.
func NewInbox(remote MessageAPI, opts ...InboxOption) *Inbox {
	in := &Inbox{
		remote: remote,
		filter: FilterAll,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Load fetches all messages, newest first per server order.
func (in *Inbox) Load(ctx context.Context) {
	in.loading = true
	messages, err := in.remote.ContactMessages(ctx, 0)
	in.loading = false
	if err != nil {
		in.log.Debug("inbox load failed", zap.Error(err))
		in.banner = "Failed to load messages"
		return
	}
	in.messages = messages
}

// Banner returns the current inline error, empty when none.
func (in *Inbox) Banner() string { return in.banner }

// Loading reports an in-flight load.
func (in *Inbox) Loading() bool { return in.loading }

// SetFilter narrows the visible messages.
func (in *Inbox) SetFilter(f MessageFilter) { in.filter = f }

// Filter returns the active filter.
func (in *Inbox) Filter() MessageFilter { return in.filter }

// Messages returns the messages matching the active filter.
func (in *Inbox) Messages() []api.ContactMessage {
	if in.filter == FilterAll {
		return in.messages
	}
	wantRead := in.filter == FilterRead
	var out []api.ContactMessage
	for _, m := range in.messages {
		if m.Read == wantRead {
			out = append(out, m)
		}
	}
	return out
}

// Unread counts unread messages across the whole inbox, ignoring the filter.
func (in *Inbox) Unread() int {
	n := 0
	for _, m := range in.messages {
		if !m.Read {
			n++
		}
	}
	return n
}

// Select opens a message. Opening an unread message marks it read on the
// server best-effort: a failure leaves it unread and is otherwise ignored.
func (in *Inbox) Select(ctx context.Context, id int) (api.ContactMessage, bool) {
	for i, m := range in.messages {
		if m.ID != id {
			continue
		}
		in.selected = id
		if !m.Read {
			if err := in.remote.MarkMessageRead(ctx, id); err != nil {
				in.log.Debug("mark read failed", zap.Int("id", id), zap.Error(err))
			} else {
				in.messages[i].Read = true
			}
		}
		return in.messages[i], true
	}
	return api.ContactMessage{}, false
}

// Selected returns the open message id, zero when none.
func (in *Inbox) Selected() int { return in.selected }

// Deselect closes the open message.
func (in *Inbox) Deselect() { in.selected = 0 }

// Delete drives the same two-step confirmation as the entity editor: first
// call arms, second call for the same id deletes and reloads.
func (in *Inbox) Delete(ctx context.Context, id int) bool {
	if id == 0 {
		return false
	}
	if in.deleteArmed != id {
		in.deleteArmed = id
		return false
	}
	in.deleteArmed = 0
	if err := in.remote.DeleteContactMessage(ctx, id); err != nil {
		in.log.Debug("message delete failed", zap.Int("id", id), zap.Error(err))
		in.banner = "Failed to delete"
		return false
	}
	if in.selected == id {
		in.selected = 0
	}
	in.Load(ctx)
	return true
}

// DeleteArmed returns the id whose delete confirmation is armed, zero when
// none.
func (in *Inbox) DeleteArmed() int { return in.deleteArmed }
