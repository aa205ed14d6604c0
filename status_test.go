package motion

import (
	"errors"
	"testing"
)

func TestStructuredError(t *testing.T) {
	err := NewError("aline", ZeroLengthMove, "move shorter than MIN_LINE_LENGTH")

	if err.Op != "aline" {
		t.Errorf("Expected Op=aline, got %s", err.Op)
	}
	if err.Code != ZeroLengthMove {
		t.Errorf("Expected Code=ZeroLengthMove, got %s", err.Code)
	}

	expected := "motion: aline: move shorter than MIN_LINE_LENGTH"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestErrorDefaultsMessageToCode(t *testing.T) {
	err := NewError("region-plan", FailedToConverge, "")
	expected := "motion: region-plan: failed-to-converge"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestWrapErrorPreservesCode(t *testing.T) {
	inner := errors.New("downstream queue rejected segment")
	err := WrapError("dispatch", BufferFullFatal, inner)

	if err.Code != BufferFullFatal {
		t.Errorf("Expected Code=BufferFullFatal, got %s", err.Code)
	}
	if !errors.Is(err, inner) {
		t.Error("Expected wrapped error to satisfy errors.Is for the inner cause")
	}
}

func TestWrapErrorNilIsNil(t *testing.T) {
	if WrapError("dispatch", Err, nil) != nil {
		t.Error("Expected WrapError(nil) to return nil")
	}
}

func TestErrorIsBareStatus(t *testing.T) {
	err := NewError("region-plan", FailedToConverge, "")
	if !errors.Is(err, FailedToConverge) {
		t.Error("Expected *Error to satisfy errors.Is against its bare Status")
	}
	if errors.Is(err, ZeroLengthMove) {
		t.Error("Expected *Error not to match an unrelated Status")
	}
}

func TestIsStatus(t *testing.T) {
	err := NewError("aline", ZeroLengthMove, "too short")

	if !IsStatus(err, ZeroLengthMove) {
		t.Error("IsStatus should return true for matching code")
	}
	if IsStatus(err, FailedToConverge) {
		t.Error("IsStatus should return false for non-matching code")
	}
	if IsStatus(nil, ZeroLengthMove) {
		t.Error("IsStatus should return false for nil error")
	}
}
