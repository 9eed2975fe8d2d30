package records

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FileStore persists a Document as a single pretty printed JSON file.  Every append reads and rewrites the whole
// file under lock.
type FileStore struct {
	path string
	now  func() time.Time
	lock sync.Mutex
}

type Option func(f *FileStore)

// WithClock replaces the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *FileStore) {
		f.now = now
	}
}

func NewFileStore(path string, opts ...Option) *FileStore {
	f := &FileStore{
		path: path,
		now:  time.Now,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

func (f *FileStore) Path() string {
	return f.path
}

// Append stores fields under a new timestamp key and returns that key.  The backing file is created holding an empty
// document when missing.
func (f *FileStore) Append(parent context.Context, fields Submission) (string, error) {
	ctx, span := tracer.Start(parent, "records.Append")
	defer span.End()
	if err := ctx.Err(); err != nil {
		return "", recordFailure(span, err)
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if err := f.ensureExists(ctx); err != nil {
		return "", recordFailure(span, err)
	}
	doc, err := f.read()
	if err != nil {
		return "", recordFailure(span, err)
	}

	key, collided := doc.nextFreeKey(f.now())
	if collided {
		slog.WarnContext(ctx, "timestamp already stored, advanced key", "path", f.path, "key", key)
	}
	stored := maps.Clone(fields)
	if stored == nil {
		stored = Submission{}
	}
	doc[key] = stored

	if err := f.write(doc); err != nil {
		return "", recordFailure(span, err)
	}
	span.SetAttributes(attribute.String("records.key", key), attribute.Int("records.count", len(doc)))
	return key, nil
}

// List reads the entire document.  A missing file is an empty document and is not created.
func (f *FileStore) List(parent context.Context) (Document, error) {
	_, span := tracer.Start(parent, "records.List")
	defer span.End()

	f.lock.Lock()
	defer f.lock.Unlock()

	if _, err := os.Stat(f.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, nil
		}
		return nil, recordFailure(span, &IoError{Op: "stat", Path: f.path, Underlying: err})
	}
	doc, err := f.read()
	if err != nil {
		return nil, recordFailure(span, err)
	}
	span.SetAttributes(attribute.Int("records.count", len(doc)))
	return doc, nil
}

func (f *FileStore) ensureExists(ctx context.Context) error {
	_, err := os.Stat(f.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return &IoError{Op: "stat", Path: f.path, Underlying: err}
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return &IoError{Op: "create", Path: f.path, Underlying: err}
	}
	slog.InfoContext(ctx, "initializing record store", "path", f.path)
	return f.write(Document{})
}

func (f *FileStore) read() (Document, error) {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &IoError{Op: "read", Path: f.path, Underlying: err}
	}
	var doc Document
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &CorruptError{Path: f.path, Underlying: err}
	}
	if doc == nil {
		return nil, &CorruptError{Path: f.path, Underlying: errors.New("document is null")}
	}
	return doc, nil
}

// write replaces the document by renaming a fully written sibling over it.
func (f *FileStore) write(doc Document) (problem error) {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &IoError{Op: "encode", Path: f.path, Underlying: err}
	}

	dir, base := filepath.Split(f.path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".*.tmp")
	if err != nil {
		return &IoError{Op: "write", Path: f.path, Underlying: err}
	}
	defer func() {
		if problem != nil {
			problem = errors.Join(problem, ignoreMissing(os.Remove(tmp.Name())))
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return &IoError{Op: "write", Path: f.path, Underlying: errors.Join(err, tmp.Close())}
	}
	if err := tmp.Chmod(0o644); err != nil {
		return &IoError{Op: "write", Path: f.path, Underlying: errors.Join(err, tmp.Close())}
	}
	if err := tmp.Close(); err != nil {
		return &IoError{Op: "write", Path: f.path, Underlying: err}
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return &IoError{Op: "write", Path: f.path, Underlying: err}
	}
	return nil
}

func ignoreMissing(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func recordFailure(span trace.Span, err error) error {
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
	return err
}
