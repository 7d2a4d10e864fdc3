package clipboard

import (
	"errors"
	"testing"

	"partpick/internal"
)

type fakeWriter struct {
	got string
	err error
}

func (f *fakeWriter) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.got = text
	return nil
}

func TestCopy(t *testing.T) {
	w := &fakeWriter{}
	ok, err := Copy(w, "강아지,고양이x3")
	if err != nil || !ok || w.got != "강아지,고양이x3" {
		t.Fatalf("ok=%v err=%v got=%q", ok, err, w.got)
	}
}

func TestCopyEmptyIsNoop(t *testing.T) {
	w := &fakeWriter{err: errors.New("must not be called")}
	ok, err := Copy(w, "")
	if ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestCopyFailure(t *testing.T) {
	w := &fakeWriter{err: errors.New("xclip missing")}
	ok, err := Copy(w, "상추")
	if ok || !errors.Is(err, internal.ErrClipboardFailure) {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}
