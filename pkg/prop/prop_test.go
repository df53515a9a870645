package prop

import (
	"errors"
	"fmt"
	"testing"
)

func TestLazy_ComputesOnce(t *testing.T) {
	calls := 0
	value := Lazy(func() (any, error) {
		calls++
		return 42, nil
	}, nil)

	for i := 0; i < 5; i++ {
		got, err := value.Get()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got != 42 {
			t.Fatalf("expected 42, got %v", got)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one computation, got %d", calls)
	}
}

func TestLazy_ValidationFailureIsTerminal(t *testing.T) {
	calls := 0
	wantErr := errors.New("not a number")
	value := Lazy(func() (any, error) {
		calls++
		return "nope", nil
	}, func(any) error {
		return wantErr
	})

	for i := 0; i < 3; i++ {
		if _, err := value.Get(); !errors.Is(err, wantErr) {
			t.Fatalf("read %d: expected validation error, got %v", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected failed computation to stay terminal, got %d calls", calls)
	}
}

func TestLazy_ComputeErrorIsTerminal(t *testing.T) {
	calls := 0
	value := Lazy(func() (any, error) {
		calls++
		return nil, fmt.Errorf("boom %d", calls)
	}, nil)

	_, err1 := value.Get()
	_, err2 := value.Get()
	if err1 == nil || err2 == nil {
		t.Fatalf("expected errors on every read")
	}
	if err1.Error() != "boom 1" || err2.Error() != "boom 1" {
		t.Fatalf("expected the first error to be cached, got %v then %v", err1, err2)
	}
	if calls != 1 {
		t.Fatalf("expected one computation, got %d", calls)
	}
}

func TestLazy_ValidatorSeesComputedValue(t *testing.T) {
	var seen any
	value := Lazy(func() (any, error) {
		return "payload", nil
	}, func(v any) error {
		seen = v
		return nil
	})

	if _, err := value.Get(); err != nil {
		t.Fatalf("get: %v", err)
	}
	if seen != "payload" {
		t.Fatalf("expected validator to receive computed value, got %v", seen)
	}
}

func TestPlain_RecomputesAndSkipsValidation(t *testing.T) {
	calls := 0
	value := Plain(func() (any, error) {
		calls++
		return calls, nil
	})

	first, _ := value.Get()
	second, _ := value.Get()
	if first != 1 || second != 2 {
		t.Fatalf("expected recomputation, got %v then %v", first, second)
	}
}
