package relay

import "fmt"

// DecodeError reports a payload which is not a flat form encoding.
type DecodeError struct {
	Pair       string
	Reason     string
	Underlying error
}

func (d *DecodeError) Error() string {
	if d.Underlying != nil {
		return fmt.Sprintf("decode pair %q: %s: %s", d.Pair, d.Reason, d.Underlying.Error())
	}
	return fmt.Sprintf("decode pair %q: %s", d.Pair, d.Reason)
}

func (d *DecodeError) Unwrap() error {
	return d.Underlying
}

// PayloadTooLargeError reports a relay connection which carried more than the configured limit.
type PayloadTooLargeError struct {
	Limit int64
}

func (p *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload exceeds %d bytes", p.Limit)
}

// UnreachableError reports the relay listener could not be dialed.
type UnreachableError struct {
	Address    string
	Underlying error
}

func (u *UnreachableError) Error() string {
	return fmt.Sprintf("relay %s unreachable: %s", u.Address, u.Underlying.Error())
}

func (u *UnreachableError) Unwrap() error {
	return u.Underlying
}
