package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-portfolio/pkg/api"
)

type fakeMessageAPI struct {
	messages []api.ContactMessage

	listErr   error
	markErr   error
	deleteErr error

	markCalls   []int
	deleteCalls []int
}

func (r *fakeMessageAPI) ContactMessages(context.Context, int) ([]api.ContactMessage, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]api.ContactMessage, len(r.messages))
	copy(out, r.messages)
	return out, nil
}

func (r *fakeMessageAPI) MarkMessageRead(_ context.Context, id int) error {
	r.markCalls = append(r.markCalls, id)
	if r.markErr != nil {
		return r.markErr
	}
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages[i].Read = true
		}
	}
	return nil
}

func (r *fakeMessageAPI) DeleteContactMessage(_ context.Context, id int) error {
	r.deleteCalls = append(r.deleteCalls, id)
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i := range r.messages {
		if r.messages[i].ID == id {
			r.messages = append(r.messages[:i], r.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

func seededInbox() *fakeMessageAPI {
	return &fakeMessageAPI{messages: []api.ContactMessage{
		{ID: 3, Name: "Carol", Read: false},
		{ID: 2, Name: "Bob", Read: true},
		{ID: 1, Name: "Alice", Read: false},
	}}
}

func TestInboxFilters(t *testing.T) {
	in := NewInbox(seededInbox())
	ctx := context.Background()
	in.Load(ctx)

	if got := len(in.Messages()); got != 3 {
		t.Fatalf("all filter: %d messages", got)
	}
	if in.Unread() != 2 {
		t.Fatalf("unread = %d, want 2", in.Unread())
	}

	in.SetFilter(FilterUnread)
	if got := len(in.Messages()); got != 2 {
		t.Fatalf("unread filter: %d messages", got)
	}
	in.SetFilter(FilterRead)
	msgs := in.Messages()
	if len(msgs) != 1 || msgs[0].Name != "Bob" {
		t.Fatalf("read filter: %#v", msgs)
	}
}

func TestInboxSelectMarksRead(t *testing.T) {
	remote := seededInbox()
	in := NewInbox(remote)
	ctx := context.Background()
	in.Load(ctx)

	msg, ok := in.Select(ctx, 3)
	if !ok || msg.Name != "Carol" {
		t.Fatalf("select: ok=%v msg=%#v", ok, msg)
	}
	if len(remote.markCalls) != 1 || remote.markCalls[0] != 3 {
		t.Fatalf("mark calls = %v", remote.markCalls)
	}
	if in.Unread() != 1 {
		t.Fatalf("unread after select = %d", in.Unread())
	}

	// Re-opening an already-read message must not hit the server again.
	if _, ok := in.Select(ctx, 3); !ok {
		t.Fatal("re-select failed")
	}
	if len(remote.markCalls) != 1 {
		t.Fatalf("mark calls = %v", remote.markCalls)
	}
}

func TestInboxSelectMarkReadFailureIsIgnored(t *testing.T) {
	remote := seededInbox()
	remote.markErr = errors.New("boom")
	in := NewInbox(remote)
	ctx := context.Background()
	in.Load(ctx)

	msg, ok := in.Select(ctx, 1)
	if !ok {
		t.Fatal("select should still open the message")
	}
	if msg.Read {
		t.Fatal("message must stay unread when the mark fails")
	}
	if in.Banner() != "" {
		t.Fatalf("mark-read failure set a banner: %q", in.Banner())
	}
}

func TestInboxDeleteTwoStep(t *testing.T) {
	remote := seededInbox()
	in := NewInbox(remote)
	ctx := context.Background()
	in.Load(ctx)

	if in.Delete(ctx, 2) {
		t.Fatal("first call must only arm")
	}
	if in.DeleteArmed() != 2 {
		t.Fatalf("armed = %d", in.DeleteArmed())
	}
	if len(remote.deleteCalls) != 0 {
		t.Fatal("arming hit the network")
	}

	if !in.Delete(ctx, 2) {
		t.Fatalf("confirmed delete failed: banner=%q", in.Banner())
	}
	if len(in.Messages()) != 2 {
		t.Fatalf("messages after delete: %d", len(in.Messages()))
	}
}

func TestInboxDeleteClearsSelection(t *testing.T) {
	remote := seededInbox()
	in := NewInbox(remote)
	ctx := context.Background()
	in.Load(ctx)

	in.Select(ctx, 2)
	in.Delete(ctx, 2)
	in.Delete(ctx, 2)
	if in.Selected() != 0 {
		t.Fatalf("selected = %d after deleting the open message", in.Selected())
	}
}

func TestInboxLoadFailure(t *testing.T) {
	remote := seededInbox()
	remote.listErr = errors.New("boom")
	in := NewInbox(remote)
	in.Load(context.Background())

	if in.Banner() != "Failed to load messages" {
		t.Fatalf("banner = %q", in.Banner())
	}
}
