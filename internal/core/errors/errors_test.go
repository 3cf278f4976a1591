package errors

import (
	"errors"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeNotFound, "resource not found")
		if err.Error() != "[NOT_FOUND] resource not found" {
			t.Errorf("expected [NOT_FOUND] resource not found, got %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		expected := "[INTERNAL_ERROR] internal failure: original error"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeValidation, "invalid input")
		if !IsCode(err, CodeValidation) {
			t.Error("expected IsCode to return true for CodeValidation")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := New(CodeParseError, "parse failed")
		err = AddContext(err, CtxPath, "src/app/app.module.ts")
		if !IsCode(err, CodeParseError) {
			t.Error("expected context addition to keep the code")
		}
		var de *DomainError
		if !errors.As(err, &de) || de.Context[CtxPath] != "src/app/app.module.ts" {
			t.Errorf("expected path context, got %v", err)
		}
	})

	t.Run("IsCodeWithWrapped", func(t *testing.T) {
		original := errors.New("original error")
		err := Wrap(original, CodeInternal, "internal failure")
		if !IsCode(err, CodeInternal) {
			t.Error("expected IsCode to return true for wrapped CodeInternal")
		}
	})
}
