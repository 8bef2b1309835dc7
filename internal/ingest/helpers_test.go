package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"go.uber.org/zap"
)

func testConfig() Config {
	return Config{
		Network:              "tondi-testnet10",
		ProcessingVersion:    "test",
		AncestorMaxRetries:   2,
		DBMaxRetries:         2,
		CatchUpInterval:      time.Hour,
		NodeSyncPollInterval: time.Millisecond,
		DBRetryInterval:      time.Millisecond,
		RPCInitialBackoff:    time.Millisecond,
		RPCMaxBackoff:        2 * time.Millisecond,
	}
}

// allowMetrics accepts any metric call. Retries are left to expectRetry when
// it is set.
func allowMetrics(ctrl *gomock.Controller, expectRetry func(m *MockMetrics)) *MockMetrics {
	m := NewMockMetrics(ctrl)
	m.EXPECT().ObserveBatch(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().ObserveBlock(gomock.Any()).AnyTimes()
	m.EXPECT().ObserveReorg(gomock.Any(), gomock.Any()).AnyTimes()
	m.EXPECT().SetCursor(gomock.Any(), gomock.Any()).AnyTimes()
	if expectRetry != nil {
		expectRetry(m)
	} else {
		m.EXPECT().ObserveRetry(gomock.Any()).AnyTimes()
	}
	return m
}

func newTestPipeline(t *testing.T, store Store, n NodeClient, cfg Config, metrics Metrics) *Pipeline {
	t.Helper()
	if metrics == nil {
		metrics = allowMetrics(gomock.NewController(t), nil)
	}
	p, err := NewPipeline(cfg, store, n, metrics, zap.NewNop())
	if err != nil {
		t.Fatalf("NewPipeline() error = %v", err)
	}
	p.sleep = func(context.Context, time.Duration) error { return nil }
	return p
}

func mustStart(t *testing.T, p *Pipeline) {
	t.Helper()
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}

func mustSync(t *testing.T, p *Pipeline) {
	t.Helper()
	if err := p.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
}

func mustIngest(t *testing.T, p *Pipeline, n *fakeNode, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := p.Ingest(context.Background(), n.block(name)); err != nil {
			t.Fatalf("Ingest(%s) error = %v", name, err)
		}
	}
}

func assertTip(t *testing.T, p *Pipeline, store *memStore, name string) {
	t.Helper()
	want := hashOf(name)
	if got := store.selectedTipHash(); got != want {
		t.Fatalf("stored selected tip = %s, want %s (%s)", got, want, name)
	}
	if tip := p.State().SelectedTip; tip == nil || tip.Hash != want {
		t.Fatalf("tracked selected tip = %+v, want %s", tip, name)
	}
	if n := store.selectedTipCount(); n != 1 {
		t.Fatalf("selected tip rows = %d, want 1", n)
	}
}

func assertCursor(t *testing.T, p *Pipeline, store *memStore, name string) {
	t.Helper()
	want := hashOf(name)
	cursor, err := store.SyncCursor(context.Background())
	if err != nil {
		t.Fatalf("SyncCursor() error = %v", err)
	}
	if cursor == nil || cursor.Hash != want {
		t.Fatalf("stored cursor = %+v, want %s", cursor, name)
	}
	if c := p.State().Cursor; c == nil || c.Hash != want {
		t.Fatalf("tracked cursor = %+v, want %s", c, name)
	}
}
