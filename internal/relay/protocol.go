// Package relay implements the plain TCP hand off between the web front end and the record store.
//
// Each connection carries exactly one application/x-www-form-urlencoded payload.  The sender writes the payload then
// closes (or half closes) its side; the receiver reads until EOF, bounded by a maximum size.  Nothing is written back to
// the sender.
package relay

import (
	"io"
	"net/url"
	"strings"

	"github.com/meschbach/formrelay/internal/records"
)

const DefaultMaxPayload int64 = 64 * 1024

// ReadPayload reads until EOF.  More than max bytes is a *PayloadTooLargeError.
func ReadPayload(in io.Reader, max int64) ([]byte, error) {
	payload, err := io.ReadAll(io.LimitReader(in, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(payload)) > max {
		return nil, &PayloadTooLargeError{Limit: max}
	}
	return payload, nil
}

// Decode parses a form encoded payload into a submission.  Pairs are split on the first '=' and both sides are
// unescaped with '+' as space.  An empty payload, a pair without '=', or a pair with an empty name is rejected.  A
// repeated name keeps the last value.
func Decode(payload []byte) (records.Submission, error) {
	if len(payload) == 0 {
		return nil, &DecodeError{Reason: "empty payload"}
	}
	out := records.Submission{}
	for _, pair := range strings.Split(string(payload), "&") {
		rawKey, rawValue, found := strings.Cut(pair, "=")
		if !found {
			return nil, &DecodeError{Pair: pair, Reason: "missing '='"}
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, &DecodeError{Pair: pair, Reason: "bad field name", Underlying: err}
		}
		if key == "" {
			return nil, &DecodeError{Pair: pair, Reason: "empty field name"}
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, &DecodeError{Pair: pair, Reason: "bad field value", Underlying: err}
		}
		out[key] = value
	}
	return out, nil
}

// Encode is the inverse of Decode, with fields ordered by name.
func Encode(fields records.Submission) []byte {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	return []byte(values.Encode())
}
