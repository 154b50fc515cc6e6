package bridge_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdnotes/internal/bridge"
	"mdnotes/internal/domain"
)

// stubOps answers every operation successfully, optionally after a delay.
type stubOps struct {
	delay time.Duration
	crash bool
}

func (s stubOps) wait() {
	if s.crash {
		panic("host bug")
	}
	time.Sleep(s.delay)
}

func (s stubOps) GetAppVersion() string {
	s.wait()
	return "1.2.3"
}

func (s stubOps) TestIPC() domain.IPCResult {
	s.wait()
	return domain.IPCResult{Result: domain.OK(), Message: "IPC is working"}
}
func (s stubOps) SaveMarkdown(id, _, _ string) domain.SaveResult {
	s.wait()
	return domain.SaveResult{Result: domain.OK(), FilePath: "/notes/" + id + ".md"}
}
func (s stubOps) LoadAllMarkdown() domain.LoadResult {
	s.wait()
	return domain.LoadResult{Result: domain.OK(), Notes: []domain.Note{}}
}

func (s stubOps) DeleteMarkdown(string) domain.Result {
	s.wait()
	return domain.OK()
}

func (s stubOps) GetMarkdownDir() domain.DirResult {
	s.wait()
	return domain.DirResult{Result: domain.OK(), Path: "/notes"}
}

func (s stubOps) OpenMarkdownDir() domain.Result {
	s.wait()
	return domain.OK()
}

func TestClient_ForwardsCalls(t *testing.T) {
	c := bridge.NewClient(stubOps{}, bridge.NewRegistry(nil))
	ctx := context.Background()

	assert.Equal(t, "1.2.3", c.GetAppVersion(ctx))
	assert.Equal(t, "IPC is working", c.TestIPC(ctx).Message)
	assert.Equal(t, "/notes/n1.md", c.SaveMarkdown(ctx, "n1", "t", "c").FilePath)
	assert.True(t, c.LoadAllMarkdown(ctx).Success)
	assert.True(t, c.DeleteMarkdown(ctx, "n1").Success)
	assert.Equal(t, "/notes", c.GetMarkdownDir(ctx).Path)
	assert.True(t, c.OpenMarkdownDir(ctx).Success)
}

func TestClient_TimeoutResolvesWithFailure(t *testing.T) {
	c := bridge.NewClient(stubOps{delay: time.Second}, bridge.NewRegistry(nil), bridge.WithTimeout(20*time.Millisecond))

	start := time.Now()
	res := c.SaveMarkdown(context.Background(), "n1", "t", "c")
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	require.False(t, res.Success)
	require.NotNil(t, res.Details)
	assert.Equal(t, "ETIMEDOUT", res.Details.ErrorName)
	assert.Equal(t, "n1", res.Details.ID)
	assert.True(t, res.Valid())
}

func TestClient_CancelledContext(t *testing.T) {
	c := bridge.NewClient(stubOps{delay: time.Second}, bridge.NewRegistry(nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := c.DeleteMarkdown(ctx, "n1")
	require.False(t, res.Success)
	assert.Equal(t, "ECANCELED", res.Details.ErrorName)
}

func TestClient_HostPanicBecomesFailure(t *testing.T) {
	c := bridge.NewClient(stubOps{crash: true}, bridge.NewRegistry(nil))

	res := c.LoadAllMarkdown(context.Background())
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "host bug")
	assert.Nil(t, res.Notes)
}

func TestClient_ResubscribeKeepsOneListener(t *testing.T) {
	events := bridge.NewRegistry(nil)
	c := bridge.NewClient(stubOps{}, events)

	c.OnMenuNewNote(func() {})
	c.OnMenuNewNote(func() {})

	assert.Equal(t, 1, events.Count(bridge.EventMenuNewNote))
}

func TestClient_OnlyLatestLoadNotesSubscriberFires(t *testing.T) {
	events := bridge.NewRegistry(nil)
	c := bridge.NewClient(stubOps{}, events)
	var first, second atomic.Int32

	c.OnLoadNotes(func() { first.Add(1) })
	c.OnLoadNotes(func() { second.Add(1) })
	events.Emit(context.Background(), bridge.EventLoadNotes, nil)

	assert.Zero(t, first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestClient_UnsubscribeStopsDelivery(t *testing.T) {
	events := bridge.NewRegistry(nil)
	c := bridge.NewClient(stubOps{}, events)
	var calls atomic.Int32

	unsubscribe := c.OnMenuNewNote(func() { calls.Add(1) })
	events.Emit(context.Background(), bridge.EventMenuNewNote, nil)
	unsubscribe()
	events.Emit(context.Background(), bridge.EventMenuNewNote, nil)

	assert.Equal(t, int32(1), calls.Load())
}
