package logger

import "testing"

func TestNewAcceptsAnyLevel(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "", "bogus"} {
		l := New(lvl, false)
		l.Named("test").Debug("probe", String("level", lvl))
	}
}

func TestNopNamed(t *testing.T) {
	l := NewNop().Named("a").Named("b")
	l.Info("discarded", Int("n", 1), Bool("ok", true))
	if err := l.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}
