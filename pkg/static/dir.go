package static

import (
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// IndexContentType is sent with the entry document.
const IndexContentType = "text/html; charset=utf-8"

// Dir serves files from an fs.FS.
type Dir struct {
	fsys  fs.FS
	index string
}

// New creates a Dir over fsys. An empty index defaults to "index.html".
func New(fsys fs.FS, index string) (*Dir, error) {
	if fsys == nil {
		return nil, ErrNilFS
	}
	index = strings.TrimPrefix(path.Clean("/"+index), "/")
	if index == "" || index == "." {
		index = "index.html"
	}
	return &Dir{fsys: fsys, index: index}, nil
}

// NewFromConfig creates a Dir rooted at cfg.Dir on the local disk.
func NewFromConfig(cfg Config) (*Dir, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("%w: STATIC_DIR is empty", ErrNilFS)
	}
	return New(os.DirFS(cfg.Dir), cfg.Index)
}

// Index returns the entry document name.
func (d *Dir) Index() string {
	return d.index
}

// Open resolves urlPath to a regular file under the root.
// The caller must close the returned file when ok is true.
func (d *Dir) Open(urlPath string) (fs.File, fs.FileInfo, bool) {
	name, ok := resolve(urlPath)
	if !ok {
		return nil, nil, false
	}
	f, info, err := d.open(name)
	if err != nil {
		return nil, nil, false
	}
	return f, info, true
}

// ServeAsset writes the file at urlPath. It reports false, without writing
// anything, when urlPath is not an asset.
func (d *Dir) ServeAsset(w http.ResponseWriter, r *http.Request, urlPath string) bool {
	f, info, ok := d.Open(urlPath)
	if !ok {
		return false
	}
	defer f.Close()

	serve(w, r, f, info, ContentType(info.Name()))
	return true
}

// ServeIndex writes the entry document. It returns ErrIndexMissing, without
// writing anything, when the document cannot be opened.
func (d *Dir) ServeIndex(w http.ResponseWriter, r *http.Request) error {
	f, info, err := d.open(d.index)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIndexMissing, d.index, err)
	}
	defer f.Close()

	serve(w, r, f, info, IndexContentType)
	return nil
}

func (d *Dir) open(name string) (fs.File, fs.FileInfo, error) {
	f, err := d.fsys.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, ErrNotRegular
	}
	return f, info, nil
}

// resolve turns a URL path into an fs.FS name. The root itself and any
// path that would climb out of the root do not resolve.
func resolve(urlPath string) (string, bool) {
	if strings.Contains(urlPath, "\x00") || strings.Contains(urlPath, `\`) {
		return "", false
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", false
		}
	}
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

func serve(w http.ResponseWriter, r *http.Request, f fs.File, info fs.FileInfo, contentType string) {
	w.Header().Set("Content-Type", contentType)
	if rs, ok := f.(io.ReadSeeker); ok {
		http.ServeContent(w, r, info.Name(), info.ModTime(), rs)
		return
	}
	w.Header().Set("Content-Length", fmt.Sprint(info.Size()))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.Copy(w, f)
}
