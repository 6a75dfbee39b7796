package observability

import (
	"context"
	"testing"
	"time"
)

type recordingReportHooks struct {
	started, completed int
}

func (r *recordingReportHooks) OnArtifactStart(context.Context, string, string) { r.started++ }
func (r *recordingReportHooks) OnArtifactComplete(context.Context, string, string, time.Duration, error) {
	r.completed++
}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(context.Context, string)      { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(context.Context, string)     { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(context.Context, string, int) { r.sets++ }

func TestHookRegistration(t *testing.T) {
	defer SetReportHooks(NoopReportHooks{})
	defer SetCacheHooks(NoopCacheHooks{})

	rh := &recordingReportHooks{}
	ch := &recordingCacheHooks{}
	SetReportHooks(rh)
	SetCacheHooks(ch)

	ctx := context.Background()
	Report().OnArtifactStart(ctx, "sample_raw.fif", "raw")
	Report().OnArtifactComplete(ctx, "sample_raw.fif", "raw", time.Millisecond, nil)
	Cache().OnCacheMiss(ctx, "frag")
	Cache().OnCacheSet(ctx, "frag", 128)
	Cache().OnCacheHit(ctx, "frag")

	if rh.started != 1 || rh.completed != 1 {
		t.Errorf("report hooks = %+v", rh)
	}
	if ch.hits != 1 || ch.misses != 1 || ch.sets != 1 {
		t.Errorf("cache hooks = %+v", ch)
	}
}

func TestNilRegistrationKeepsCurrent(t *testing.T) {
	defer SetReportHooks(NoopReportHooks{})

	rh := &recordingReportHooks{}
	SetReportHooks(rh)
	SetReportHooks(nil)

	Report().OnArtifactStart(context.Background(), "p", "k")
	if rh.started != 1 {
		t.Error("nil registration must not replace hooks")
	}
}
