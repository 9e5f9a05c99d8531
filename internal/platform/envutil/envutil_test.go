package envutil

import "testing"

func TestParsersFallBackOnGarbage(t *testing.T) {
	t.Setenv("ENVUTIL_INT", "nope")
	t.Setenv("ENVUTIL_BOOL", "maybe")
	t.Setenv("ENVUTIL_FLOAT", "x")

	if got := Int("ENVUTIL_INT", 7); got != 7 {
		t.Fatalf("Int: got=%d want=7", got)
	}
	if got := Bool("ENVUTIL_BOOL", true); !got {
		t.Fatalf("Bool: got=%v want=true", got)
	}
	if got := Float("ENVUTIL_FLOAT", 0.5); got != 0.5 {
		t.Fatalf("Float: got=%v want=0.5", got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("ENVUTIL_LIST", " http://a.test, ,http://b.test ")
	got := List("ENVUTIL_LIST")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected list: %v", got)
	}
	if got := List("ENVUTIL_LIST_UNSET"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
