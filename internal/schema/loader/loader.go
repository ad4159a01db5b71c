package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	pkgschema "github.com/goliatone/go-formwizard/pkg/schema"
)

// maxDocumentBytes bounds schema payloads read from disk or the network.
const maxDocumentBytes = 1 << 20

// Loader implements pkgschema.Loader for file, fs.FS, and HTTP sources.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ pkgschema.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgschema.LoaderOptions) pkgschema.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src pkgschema.Source) (pkgschema.Document, error) {
	if src == nil {
		return pkgschema.Document{}, errors.New("schema loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgschema.SourceKindFile:
		if err := checkExtension(src.Location()); err != nil {
			return pkgschema.Document{}, err
		}
		data, err = loadFile(ctx, src.Location())
	case pkgschema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case pkgschema.SourceKindURL:
		if !l.allowHTTP {
			return pkgschema.Document{}, errors.New("schema loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("schema loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return pkgschema.Document{}, err
	}
	if len(data) > maxDocumentBytes {
		return pkgschema.Document{}, fmt.Errorf("schema loader: %s exceeds %d bytes", src.Location(), maxDocumentBytes)
	}

	return pkgschema.NewDocument(src, data)
}

func checkExtension(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return nil
	default:
		return fmt.Errorf("schema loader: %s is not a .json, .yaml, or .yml file", path)
	}
}
