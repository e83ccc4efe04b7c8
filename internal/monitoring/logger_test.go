package monitoring

import "testing"

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })
	Logf("sweep started")
	if !called {
		t.Error("custom logger was not called")
	}

	// nil installs a no-op rather than leaving Logf nil.
	called = false
	SetLogger(nil)
	Logf("sweep started")
	if called {
		t.Error("no-op logger should not have forwarded the call")
	}
	if Logf == nil {
		t.Error("Logf must never be nil")
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should not be nil by default")
	}
}
