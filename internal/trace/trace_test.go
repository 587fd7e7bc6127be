package trace

import (
	"context"
	"testing"
)

func TestInitWithServiceReplacesAndShutsDownPrevious(t *testing.T) {
	if err := InitWithService("first", "test"); err != nil {
		t.Fatalf("init: %v", err)
	}
	mu.RLock()
	first := tracerProvider
	mu.RUnlock()

	if err := InitWithService("second", "test"); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	t.Cleanup(func() { _ = Shutdown(context.Background()) })

	_, span := first.Tracer("check").Start(context.Background(), "after-replace")
	if span.IsRecording() {
		t.Error("Expected the replaced provider to be shut down")
	}
	span.End()

	if !Enabled() {
		t.Error("Expected tracing to stay enabled on the new provider")
	}
	_, live := StartSpan(context.Background(), "live")
	if !live.IsRecording() {
		t.Error("Expected spans from the current provider to record")
	}
	live.End()
}

func TestStartSpanDisabled(t *testing.T) {
	_ = Shutdown(context.Background())
	ctx := context.Background()
	got, span := StartSpan(ctx, "noop")
	if got != ctx || span.IsRecording() {
		t.Error("Expected a no-op span when tracing is disabled")
	}
}
