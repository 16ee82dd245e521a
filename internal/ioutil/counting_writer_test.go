package ioutil_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ghettovoice/ldapdn/internal/ioutil"
)

var errWriteFailed = errors.New("write failed")

type limitWriter struct {
	limit   int
	written int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	n := len(p)
	if w.written+n > w.limit {
		n = w.limit - w.written
	}
	w.written += n
	if n < len(p) {
		return n, errWriteFailed
	}
	return n, nil
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := ioutil.NewCountingWriter(&buf)

	cw.WriteString("cn=J. Smith")
	cw.Write([]byte{','})
	cw.Call(func(w io.Writer) (int, error) { return io.WriteString(w, "c=US") })

	num, err := cw.Result()
	if err != nil {
		t.Fatalf("cw.Result() error = %v, want nil", err)
	}
	if got, want := num, len("cn=J. Smith,c=US"); got != want {
		t.Errorf("cw.Result() num = %d, want %d", got, want)
	}
	if got, want := buf.String(), "cn=J. Smith,c=US"; got != want {
		t.Errorf("buf.String() = %q, want %q", got, want)
	}
}

func TestCountingWriter_StopsAfterError(t *testing.T) {
	t.Parallel()

	w := &limitWriter{limit: 4}
	cw := ioutil.NewCountingWriter(w)

	cw.WriteString("cn=abc")
	n, err := cw.WriteString("more")
	if n != 0 {
		t.Errorf("cw.WriteString() after failure = %d, want 0", n)
	}
	if diff := cmp.Diff(err, errWriteFailed, cmpopts.EquateErrors()); diff != "" {
		t.Errorf("cw.WriteString() error = %v, want %v\ndiff (-got +want):\n%v", err, errWriteFailed, diff)
	}

	called := false
	cw.Call(func(io.Writer) (int, error) {
		called = true
		return 0, nil
	})
	if called {
		t.Error("cw.Call() invoked fn after failure")
	}
	if got, _ := cw.Result(); got != 4 {
		t.Errorf("cw.Result() = %d, want %d", got, 4)
	}
}

func TestCountingWriter_Fail(t *testing.T) {
	t.Parallel()

	errFirst := errors.New("first")
	cw := ioutil.GetCountingWriter(io.Discard)
	defer ioutil.FreeCountingWriter(cw)

	cw.Fail(errFirst)
	cw.Fail(errors.New("second"))
	if _, err := cw.Result(); !errors.Is(err, errFirst) {
		t.Errorf("cw.Result() error = %v, want %v", err, errFirst)
	}
}
