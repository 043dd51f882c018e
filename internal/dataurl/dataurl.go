// Package dataurl turns uploaded identity-document images into base64 data
// URLs that can be used directly as an <img> source.
package dataurl

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes is the inclusive per-file limit (5 MiB).
const DefaultMaxBytes int64 = 5 << 20

var (
	ErrEmpty     = errors.New("file is empty")
	ErrTooLarge  = errors.New("file exceeds size limit")
	ErrNotImage  = errors.New("file is not an image")
	ErrMalformed = errors.New("malformed data url")
)

// Encode reads r into a data URL. size is the size declared by the client
// (-1 when unknown); a declared size above limit is rejected before any byte
// is read. The stream itself is also capped at limit bytes.
func Encode(r io.Reader, size, limit int64) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	if size > limit {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, size, limit)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: %s", ErrNotImage, mtype.String())
	}

	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mtype.String()) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mtype.String())
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String(), nil
}

// Decode splits a base64 data URL into its media type and payload.
func Decode(u string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(u, "data:")
	if !ok {
		return "", nil, ErrMalformed
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrMalformed
	}
	mediaType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("%w: not base64", ErrMalformed)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if mediaType == "" {
		mediaType = "text/plain"
	}
	return mediaType, data, nil
}

// Extension guesses a file extension for a data URL's media type.
func Extension(mediaType string) string {
	if m := mimetype.Lookup(mediaType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	return ".bin"
}

// FromBytes is a convenience wrapper around Encode for in-memory images.
func FromBytes(data []byte, limit int64) (string, error) {
	return Encode(bytes.NewReader(data), int64(len(data)), limit)
}
