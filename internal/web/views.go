package web

import (
	"errors"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/meschbach/formrelay/internal/junk/restful"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errNotFound = errors.New("not found")

func (s *Site) viewRoute(view string, status int) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		s.renderView(writer, request, view, status)
	}
}

func (s *Site) renderView(writer http.ResponseWriter, request *http.Request, view string, status int) {
	content, err := os.ReadFile(filepath.Join(s.AssetRoot, view))
	if err != nil {
		restful.InternalError(writer, request, err)
		return
	}
	restful.Bytes(writer, request, status, "text/html", content)
}

func (s *Site) staticRoute() http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		ctx, span := tracer.Start(request.Context(), "web.static")
		defer span.End()

		resolved, err := s.resolveStatic(request.URL.Path)
		if err != nil {
			span.SetAttributes(attribute.Bool("web.static.found", false))
			slog.DebugContext(ctx, "static file not served", "path", request.URL.Path, "err", err)
			s.renderView(writer, request, ErrorView, http.StatusNotFound)
			return
		}
		span.SetAttributes(attribute.Bool("web.static.found", true))
		s.serveFile(writer, request.WithContext(ctx), resolved, span)
	}
}

func (s *Site) serveFile(writer http.ResponseWriter, request *http.Request, name string, span trace.Span) {
	file, err := os.Open(name)
	if err != nil {
		restful.InternalError(writer, request, err)
		return
	}
	defer func() {
		if err := file.Close(); err != nil {
			span.RecordError(err)
		}
	}()
	info, err := file.Stat()
	if err != nil {
		restful.InternalError(writer, request, err)
		return
	}
	writer.Header().Set("Content-Type", contentType(name))
	http.ServeContent(writer, request, info.Name(), info.ModTime(), file)
}

// resolveStatic maps a request path to a regular file beneath the static root.  Anything which would leave the root,
// including through symbolic links, is errNotFound.
func (s *Site) resolveStatic(requestPath string) (string, error) {
	root, err := canonicalRoot(s.StaticRoot)
	if err != nil {
		return "", err
	}
	relative := strings.TrimPrefix(path.Clean("/"+requestPath), "/")
	if relative == "" {
		return "", errNotFound
	}

	resolved, err := filepath.EvalSymlinks(filepath.Join(root, filepath.FromSlash(relative)))
	if err != nil {
		return "", errors.Join(errNotFound, err)
	}
	if !within(root, resolved) || s.hidden(resolved) {
		return "", errNotFound
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", errors.Join(errNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return "", errNotFound
	}
	return resolved, nil
}

// hidden matches a hidden file itself or its temporary siblings such as data.json.1234.tmp.
func (s *Site) hidden(resolved string) bool {
	for _, name := range s.Hidden {
		target, err := canonicalFile(name)
		if err != nil {
			continue
		}
		if resolved == target || strings.HasPrefix(resolved, target+".") {
			return true
		}
	}
	return false
}

// canonicalFile resolves name even when it does not exist yet, as long as its directory does.
func canonicalFile(name string) (string, error) {
	absolute, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(absolute); err == nil {
		return resolved, nil
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(absolute))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(absolute)), nil
}

func canonicalRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	absolute, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(absolute)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errors.Join(errNotFound, err)
	}
	return resolved, err
}

func within(root, target string) bool {
	relative, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	return relative != ".." && !strings.HasPrefix(relative, ".."+string(filepath.Separator))
}

// contentType guesses from the extension, dropping any parameters.  Unknown extensions are text/plain.
func contentType(name string) string {
	guessed := mime.TypeByExtension(filepath.Ext(name))
	if guessed == "" {
		return "text/plain"
	}
	mediaType, _, err := mime.ParseMediaType(guessed)
	if err != nil {
		return "text/plain"
	}
	return mediaType
}
