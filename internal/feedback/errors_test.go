package feedback

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatchesSentinelByKind(t *testing.T) {
	cause := errors.New("exec: not found")
	err := fmt.Errorf("collect: %w", Wrap(KindBackendLaunchFailed, "start child", cause))

	if !errors.Is(err, ErrBackendLaunchFailed) {
		t.Error("expected errors.Is to match ErrBackendLaunchFailed")
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("did not expect a timeout match")
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to stay in the chain")
	}
	if KindOf(err) != KindBackendLaunchFailed {
		t.Errorf("KindOf() = %q", KindOf(err))
	}
}

func TestKindOfSentinel(t *testing.T) {
	if KindOf(fmt.Errorf("wrap: %w", ErrTimeout)) != KindTimeout {
		t.Error("expected timeout kind from bare sentinel")
	}
	if KindOf(errors.New("other")) != "" {
		t.Error("expected empty kind")
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewError(KindTimeout, "no answer after 5s")
	if err.Error() != "timeout: no answer after 5s" {
		t.Errorf("Error() = %q", err.Error())
	}
}
