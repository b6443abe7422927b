package encoding

import (
	"encoding/json"
	"errors"
	"io"
)

var (
	ErrDecodeJSON = errors.New("failed to decode JSON")
	ErrEncodeJSON = errors.New("failed to encode JSON")
)

func UnmarshalJSON[T any](reader io.Reader) (T, error) {
	var value T
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&value); err != nil {
		return value, errors.Join(err, ErrDecodeJSON)
	}

	// A frame carries exactly one document. Anything but whitespace after it, stray closing
	// brackets included, is rejected.
	if errTail := decoder.Decode(&struct{}{}); !errors.Is(errTail, io.EOF) {
		var zero T

		return zero, ErrDecodeJSON
	}

	return value, nil
}

// Canonical re-encodes a decoded document. Object keys are emitted in sorted order so equal
// documents always produce identical bytes.
func Canonical(value any) ([]byte, error) {
	body, err := json.Marshal(value)
	if err != nil {
		return nil, errors.Join(err, ErrEncodeJSON)
	}

	return body, nil
}
