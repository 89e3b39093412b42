package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type pingEvent struct{}

func (*pingEvent) Name() EventName { return "ping" }

type recordingListener struct {
	calls  *[]string
	id     string
	err    error
	panics bool
}

func (*recordingListener) ForEvent() EventName { return "ping" }

func (r *recordingListener) Handle(ctx context.Context, ev Event) error {
	*r.calls = append(*r.calls, r.id)
	if r.panics {
		panic("boom")
	}
	return r.err
}

func TestDispatchRunsAllListenersInOrder(t *testing.T) {
	assert := assert.New(t)
	calls := []string{}
	d := NewDispatcher(zaptest.NewLogger(t))
	d.Register(
		&recordingListener{calls: &calls, id: "a"},
		&recordingListener{calls: &calls, id: "b", panics: true},
		&recordingListener{calls: &calls, id: "c", err: errors.New("failed")},
		&recordingListener{calls: &calls, id: "d"},
	)
	assert.Equal(4, d.Listeners("ping"))

	assert.NotPanics(func() { d.Dispatch(context.Background(), &pingEvent{}) })
	assert.Equal([]string{"a", "b", "c", "d"}, calls)
}

func TestDispatchWithoutListeners(t *testing.T) {
	d := NewDispatcher(zaptest.NewLogger(t))
	assert.NotPanics(t, func() { d.Dispatch(context.Background(), &pingEvent{}) })
	assert.Equal(t, 0, d.Listeners("ping"))
}

type blockingListener struct {
	release chan struct{}
	done    chan error
}

func (*blockingListener) ForEvent() EventName { return "ping" }

func (b *blockingListener) Handle(ctx context.Context, ev Event) error {
	<-b.release
	b.done <- ctx.Err()
	return nil
}

func TestDispatchDoesNotWaitForAsyncListeners(t *testing.T) {
	assert := assert.New(t)
	calls := []string{}
	b := &blockingListener{release: make(chan struct{}), done: make(chan error, 1)}
	d := NewDispatcher(zaptest.NewLogger(t))
	d.RegisterAsync(b)
	d.Register(&recordingListener{calls: &calls, id: "sync"})
	assert.Equal(2, d.Listeners("ping"))

	ctx, cancel := context.WithCancel(context.Background())
	returned := make(chan struct{})
	go func() {
		d.Dispatch(ctx, &pingEvent{})
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch waited for a background listener")
	}
	assert.Equal([]string{"sync"}, calls)

	// the request is over before the listener runs
	cancel()
	close(b.release)
	d.Wait()
	assert.NoError(<-b.done)
}
