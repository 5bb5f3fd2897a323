package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// UploadPrefix marks references served from the local media store
const UploadPrefix = "/uploads/"

const inlinePrefix = "data:"

var ErrNotLocal = errors.New("reference is not held by this media store")

// MediaStore persists uploaded image bytes and hands back a reference string
type MediaStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
	Open(ref string) (io.ReadCloser, error)
}

// DurableDiskStore writes files under a directory served at UploadPrefix
type DurableDiskStore struct {
	dir string
}

func NewDurableDiskStore(dir string) (*DurableDiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create media dir")
	}
	return &DurableDiskStore{dir: dir}, nil
}

// Save never overwrites: a taken name gets a numeric suffix before the extension
func (s *DurableDiskStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(s.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			candidate = base + "-" + strconv.Itoa(i) + ext
			continue
		}
		if err != nil {
			return "", errors.Wrap(err, "create media file")
		}
		_, err = f.Write(data)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(f.Name())
			return "", errors.Wrap(err, "write media file")
		}
		return UploadPrefix + candidate, nil
	}
}

func (s *DurableDiskStore) path(ref string) (string, error) {
	if !strings.HasPrefix(ref, UploadPrefix) {
		return "", ErrNotLocal
	}
	name := filepath.Base(strings.TrimPrefix(ref, UploadPrefix))
	if name == "." || name == "/" || name == ".." {
		return "", ErrNotLocal
	}
	return filepath.Join(s.dir, name), nil
}

func (s *DurableDiskStore) Delete(ctx context.Context, ref string) error {
	p, err := s.path(ref)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

func (s *DurableDiskStore) Open(ref string) (io.ReadCloser, error) {
	p, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// InlineEncodedStore embeds the bytes into a data URI, for hosts without a durable disk
type InlineEncodedStore struct{}

func NewInlineEncodedStore() *InlineEncodedStore {
	return &InlineEncodedStore{}
}

func (InlineEncodedStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	mime := mimetype.Detect(data).String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return inlinePrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// Delete is a no-op, the bytes live in the document
func (InlineEncodedStore) Delete(ctx context.Context, ref string) error {
	return nil
}

func (InlineEncodedStore) Open(ref string) (io.ReadCloser, error) {
	if !strings.HasPrefix(ref, inlinePrefix) {
		return nil, ErrNotLocal
	}
	i := strings.Index(ref, ";base64,")
	if i < 0 {
		return nil, errors.New("malformed inline reference")
	}
	data, err := base64.StdEncoding.DecodeString(ref[i+len(";base64,"):])
	if err != nil {
		return nil, errors.Wrap(err, "decode inline reference")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
