package log

import "testing"

type TestLogOutput struct {
	t testing.TB
}

// NewTestLogOutput wraps the logger of testing.TB to provide the Output
// interface.
func NewTestLogOutput(t testing.TB) *TestLogOutput {
	return &TestLogOutput{t: t}
}

func (l *TestLogOutput) Printf(format string, v ...any) {
	l.t.Helper()
	l.t.Logf(format, v...)
}

func (l *TestLogOutput) Fatalf(format string, v ...any) {
	l.t.Helper()
	l.t.Fatalf(format, v...)
}
