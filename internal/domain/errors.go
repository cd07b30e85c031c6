package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation = errors.New("validation")
	ErrParse      = errors.New("parse")
	ErrSchema     = errors.New("schema")
	ErrExtraction = errors.New("extraction failed")
	ErrSuperseded = errors.New("superseded by a newer run")
	ErrNoResult   = errors.New("no infographic generated yet")
)

var (
	// ErrNoInput is the validation failure of a request with neither text nor images.
	ErrNoInput = fmt.Errorf("%w: no text or images supplied", ErrValidation)
	// ErrNoPreviousInput is returned by regenerate before any run happened.
	ErrNoPreviousInput = fmt.Errorf("%w: nothing to regenerate", ErrValidation)
)

// GenericFailureMessage is shown when an error carries no usable text.
const GenericFailureMessage = "Đã xảy ra lỗi khi tạo infographic. Vui lòng thử lại."

// MissingInputMessage is shown when neither text nor images were supplied.
const MissingInputMessage = "Vui lòng nhập nội dung hoặc tải lên hình ảnh."

// IsExtractionFailure reports whether err ends a run in the ERROR state.
func IsExtractionFailure(err error) bool {
	return errors.Is(err, ErrExtraction) || errors.Is(err, ErrParse) || errors.Is(err, ErrSchema)
}

// UserMessage returns the text surfaced to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrNoInput) {
		return MissingInputMessage
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return GenericFailureMessage
	}
	return msg
}
