// Package media turns an uploaded file or a pasted link into the image
// reference stored on slider items and products.
package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/pkg/common"
	"github.com/shreejewels/storefront/pkg/metrics"
)

type Resolver struct {
	store MediaStore
	now   func() time.Time
}

func NewResolver(store MediaStore) *Resolver {
	return &Resolver{store: store, now: time.Now}
}

func (r *Resolver) Store() MediaStore { return r.store }

// Resolve returns the reference for src. Unchanged and empty sources fail with domain.ErrMissingImage.
func (r *Resolver) Resolve(ctx context.Context, src ImageSource) (string, error) {
	switch s := src.(type) {
	case Uploaded:
		if len(s.Bytes) == 0 {
			break
		}
		ref, err := r.store.Save(ctx, r.fileName(s.Name), s.Bytes)
		if err != nil {
			return "", errors.Wrapf(domain.ErrMediaResolution, "save %s: %v", s.Name, err)
		}
		metrics.Incr(metrics.MetricMediaUploads)
		return ref, nil
	case Linked:
		if u := strings.TrimSpace(s.URL); u != "" {
			return u, nil
		}
	}
	return "", domain.ErrMissingImage
}

// ResolveOrKeep resolves src, falling back to current when src is Unchanged
func (r *Resolver) ResolveOrKeep(ctx context.Context, src ImageSource, current string) (string, error) {
	if _, ok := src.(Unchanged); ok || src == nil {
		if current == "" {
			return "", domain.ErrMissingImage
		}
		return current, nil
	}
	return r.Resolve(ctx, src)
}

// Delete removes a locally held image. Failures are logged, never returned.
func (r *Resolver) Delete(ctx context.Context, ref string) {
	if !IsLocal(ref) {
		return
	}
	if err := r.store.Delete(ctx, ref); err != nil {
		zap.S().Warnf("media delete %s: %v", shorten(ref), err)
	}
}

// IsLocal reports whether ref is owned by a media store rather than an external link
func IsLocal(ref string) bool {
	return strings.HasPrefix(ref, UploadPrefix) || strings.HasPrefix(ref, inlinePrefix)
}

func (r *Resolver) fileName(original string) string {
	name := common.SanitizeFileName(original)
	if name == "" {
		name = "upload"
	}
	return fmt.Sprintf("%d-%s", r.now().UnixMilli(), name)
}

func shorten(ref string) string {
	if len(ref) > 64 {
		return ref[:64] + "..."
	}
	return ref
}
