package render_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"niv-scholar-be/pkg/scholar/gateway"
	"niv-scholar-be/pkg/scholar/insight"
	"niv-scholar-be/pkg/scholar/render"
	"niv-scholar-be/pkg/scholar/render/rendertest"
	"niv-scholar-be/pkg/scholar/verse"
	"niv-scholar-be/pkg/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSaver struct{ err error }

func (f failingSaver) Save(context.Context, insight.Insight) (insight.Insight, error) {
	return insight.Insight{}, f.err
}

func renderAndWait(t *testing.T, p *render.Pipeline, res *gateway.Result) *render.Entry {
	t.Helper()
	e, done := p.Render(context.Background(), res)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("render did not finish")
	}
	return e
}

func TestRenderRevealsThenLinkifies(t *testing.T) {
	rec := &rendertest.Recorder{}
	p := render.NewPipeline(rec, 0)

	text := "Consider John 3:16 alongside Romans 5:8."
	e := renderAndWait(t, p, &gateway.Result{Success: true, Message: text})

	require.NotNil(t, e)
	assert.Equal(t, render.SaveArmed, e.State())
	assert.Equal(t, text, rec.Revealed(e.ID()))

	refs := rec.Named("ReferenceFound")
	require.Len(t, refs, 2)
	assert.Equal(t, "John 3:16", refs[0].Reference.Label)
	assert.Equal(t, "Romans 5:8", refs[1].Reference.Label)

	completed := rec.Named("EntryCompleted")
	require.Len(t, completed, 1)
	var joined string
	for _, s := range completed[0].Segments {
		joined += s.Text
	}
	assert.Equal(t, text, joined)

	names := []string{}
	for _, ev := range rec.Events() {
		if len(names) == 0 || names[len(names)-1] != ev.Name {
			names = append(names, ev.Name)
		}
	}
	assert.Equal(t, []string{"EntryStarted", "RevealTick", "ReferenceFound", "EntryCompleted"}, names)
}

func TestRenderWithTicker(t *testing.T) {
	rec := &rendertest.Recorder{}
	p := render.NewPipeline(rec, time.Millisecond)

	e := renderAndWait(t, p, &gateway.Result{Success: true, Message: "Grace"})

	assert.Equal(t, "Grace", rec.Revealed(e.ID()))
	assert.Equal(t, render.SaveArmed, e.State())
}

func TestRenderFailureIsErrorEntry(t *testing.T) {
	rec := &rendertest.Recorder{}
	p := render.NewPipeline(rec, 0)

	e := renderAndWait(t, p, &gateway.Result{Success: false, Error: "OpenAI error: Too Many Requests", Fallback: "try later"})

	assert.Nil(t, e)
	errs := rec.Named("ErrorEntry")
	require.Len(t, errs, 1)
	assert.Equal(t, "OpenAI error: Too Many Requests", errs[0].Text)
	assert.Equal(t, "try later", errs[0].Fallback)
	assert.Empty(t, rec.Named("EntryStarted"))

	_, err := p.Save(context.Background(), errs[0].EntryID, nil, time.Now(), insight.NewStore(memory.NewStorage()))
	assert.ErrorIs(t, err, render.ErrUnknownEntry)
}

func TestRenderCancelledLeavesEntryUnsaveable(t *testing.T) {
	p := render.NewPipeline(nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	e, done := p.Render(ctx, &gateway.Result{Success: true, Message: "never shown"})
	cancel()
	<-done

	assert.Equal(t, render.Idle, e.State())
	_, err := p.Save(context.Background(), e.ID(), nil, time.Now(), insight.NewStore(memory.NewStorage()))
	assert.ErrorIs(t, err, render.ErrNotSavable)
}

func TestSaveOncePerEntry(t *testing.T) {
	ctx := context.Background()
	rec := &rendertest.Recorder{}
	p := render.NewPipeline(rec, 0)
	store := insight.NewStore(memory.NewStorage())
	e := renderAndWait(t, p, &gateway.Result{Success: true, Message: "Love is patient."})

	vc := &verse.Context{Book: "1 Corinthians", Chapter: 13, Verse: 4}
	now := time.UnixMilli(1700000000000)

	saved, err := p.Save(ctx, e.ID(), vc, now, store)
	require.NoError(t, err)
	assert.Equal(t, int64(1700000000000), saved.ID)
	assert.Equal(t, "Love is patient.", saved.Content)
	assert.Equal(t, vc, saved.VerseContext)

	_, err = p.Save(ctx, e.ID(), vc, now.Add(time.Second), store)
	assert.ErrorIs(t, err, render.ErrAlreadySaved)

	all, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Len(t, rec.Named("InsightSaved"), 1)
	assert.Equal(t, render.Saved, e.State())
}

func TestSaveFailureRearms(t *testing.T) {
	p := render.NewPipeline(nil, 0)
	e := renderAndWait(t, p, &gateway.Result{Success: true, Message: "text"})

	_, err := p.Save(context.Background(), e.ID(), nil, time.Now(), failingSaver{err: errors.New("quota exceeded")})

	assert.EqualError(t, err, "quota exceeded")
	assert.Equal(t, render.SaveArmed, e.State())
}

func TestEntriesRevealIndependently(t *testing.T) {
	rec := &rendertest.Recorder{}
	p := render.NewPipeline(rec, time.Millisecond)

	a, _ := p.Show(context.Background(), "first entry")
	b, _ := p.Show(context.Background(), "second entry")
	p.Wait()

	assert.Equal(t, "first entry", rec.Revealed(a.ID()))
	assert.Equal(t, "second entry", rec.Revealed(b.ID()))
}

func TestRetentionForgetsOldestEntries(t *testing.T) {
	ctx := context.Background()
	p := render.NewPipeline(nil, 0).WithRetention(2)
	store := insight.NewStore(memory.NewStorage())

	first := renderAndWait(t, p, &gateway.Result{Success: true, Message: "one"})
	second := renderAndWait(t, p, &gateway.Result{Success: true, Message: "two"})
	third := renderAndWait(t, p, &gateway.Result{Success: true, Message: "three"})

	_, ok := p.Entry(first.ID())
	assert.False(t, ok)
	_, err := p.Save(ctx, first.ID(), nil, time.Now(), store)
	assert.ErrorIs(t, err, render.ErrUnknownEntry)

	for _, e := range []*render.Entry{second, third} {
		_, ok := p.Entry(e.ID())
		assert.True(t, ok)
	}
	_, err = p.Save(ctx, third.ID(), nil, time.Now(), store)
	assert.NoError(t, err)
}

func TestClosedPipelineRefusesEntries(t *testing.T) {
	rec := &rendertest.Recorder{}
	p := render.NewPipeline(rec, 0)
	p.Close()

	e, done := p.Show(context.Background(), "too late")
	assert.Nil(t, e)
	select {
	case <-done:
	default:
		t.Fatal("done should already be closed")
	}

	_, err := p.Begin("too late")
	assert.ErrorIs(t, err, render.ErrPipelineClosed)
	assert.Empty(t, rec.Named("EntryStarted"))
	p.Wait()
}

func TestCloseWhileShowing(t *testing.T) {
	p := render.NewPipeline(nil, time.Microsecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		<-start
		for i := 0; i < 100; i++ {
			p.Show(ctx, "Selah")
		}
	}()
	close(start)
	p.Close()
	<-finished

	e, _ := p.Show(ctx, "after close")
	assert.Nil(t, e)
}

func TestBeginThenManualTicks(t *testing.T) {
	rec := &rendertest.Recorder{}
	p := render.NewPipeline(rec, 0)

	e, err := p.Begin("Amen")
	require.NoError(t, err)
	for {
		_, _, done := e.Advance()
		if done {
			break
		}
	}
	require.NoError(t, p.Finish(e))

	assert.Equal(t, render.SaveArmed, e.State())
	assert.Len(t, rec.Named("EntryCompleted"), 1)
}
