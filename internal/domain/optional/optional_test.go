package optional

import "testing"

func TestValue_Absent(t *testing.T) {
	v := None[int]()
	if v.IsSet() {
		t.Error("IsSet() = true for None")
	}
	if _, ok := v.Get(); ok {
		t.Error("Get() ok = true for None")
	}
	if v.OrElse(7) != 7 {
		t.Errorf("OrElse(7) = %d", v.OrElse(7))
	}
	if v.Ptr() != nil {
		t.Error("Ptr() should be nil for None")
	}
}

func TestValue_PresentZero(t *testing.T) {
	v := Of(false)
	got, ok := v.Get()
	if !ok || got {
		t.Errorf("Get() = (%v, %v), want (false, true)", got, ok)
	}
	if v.OrElse(true) {
		t.Error("OrElse must not replace a present zero value")
	}
}

func TestFromPtr(t *testing.T) {
	if FromPtr[int](nil).IsSet() {
		t.Error("FromPtr(nil) should be absent")
	}
	n := 3
	v := FromPtr(&n)
	n = 4
	if got, _ := v.Get(); got != 3 {
		t.Errorf("Get() = %d, want 3 (copied)", got)
	}
	p := v.Ptr()
	*p = 9
	if got, _ := v.Get(); got != 3 {
		t.Error("Ptr() must return a copy")
	}
}
