package records

import "fmt"

// IoError reports the document could not be read, created or written.  The submission being stored is lost.
type IoError struct {
	Op         string
	Path       string
	Underlying error
}

func (i *IoError) Error() string {
	return fmt.Sprintf("record store %s %q: %s", i.Op, i.Path, i.Underlying.Error())
}

func (i *IoError) Unwrap() error {
	return i.Underlying
}

// CorruptError reports the persisted document exists but is not a valid Document.  The store never rewrites a corrupt
// document on its own.
type CorruptError struct {
	Path       string
	Underlying error
}

func (c *CorruptError) Error() string {
	return fmt.Sprintf("record store %q is corrupt: %s", c.Path, c.Underlying.Error())
}

func (c *CorruptError) Unwrap() error {
	return c.Underlying
}
