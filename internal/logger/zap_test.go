package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.DebugLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("%q: got %v, want %v", in, got, want)
		}
	}
}

func TestNewCore_RespectsLevel(t *testing.T) {
	for _, enc := range []string{ConsoleEncoding, JSONEncoding} {
		core := newCore(zapcore.WarnLevel, enc)
		if core.Enabled(zapcore.InfoLevel) {
			t.Errorf("%s: info must be disabled at warn", enc)
		}
		if !core.Enabled(zapcore.ErrorLevel) {
			t.Errorf("%s: error must be enabled at warn", enc)
		}
	}
}

func TestInit_IsSingleton(t *testing.T) {
	a := Init(InfoLevel, JSONEncoding)
	b := Get(DebugLevel)
	if a != b {
		t.Fatal("expected the same instance")
	}
}
