// Package adminsync drives the admin panel edit flow: an edit buffer per entity,
// one image source per submission, and a full reload after every confirmed mutation.
package adminsync

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/internal/media"
)

var (
	ErrInvalidTransition = errors.New("operation not allowed in the current state")
	ErrDeletePending     = errors.New("a delete for this item is already in flight")
	ErrNotAuthenticated  = errors.New("admin login required")
)

type State int

const (
	Idle State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return "unknown"
}

type ImageMode int

const (
	ModeUpload ImageMode = iota
	ModeLink
)

// Entity is what a controller edits
type Entity interface {
	domain.Product | domain.SliderItem
	GetID() string
	GetImage() string
}

// Attachment is the image part of a mutation. At most one of File and Link is set;
// neither means "keep the stored image" and is only sent for edits.
type Attachment struct {
	FileName string
	File     []byte
	Link     string
}

// AdminClient performs mutations against the admin surface
type AdminClient[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity T, att Attachment) error
	Update(ctx context.Context, entity T, att Attachment) error
	Delete(ctx context.Context, id string) error
}

type Controller[T Entity] struct {
	mu      sync.Mutex
	gate    *Gate
	client  AdminClient[T]
	state   State
	isEdit  bool
	buffer  T
	mode    ImageMode
	file    *Attachment
	link    string
	items   []T
	deletes map[string]bool
	lastErr string
}

func NewController[T Entity](gate *Gate, client AdminClient[T]) *Controller[T] {
	return &Controller[T]{
		gate:    gate,
		client:  client,
		deletes: make(map[string]bool),
	}
}

func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items is the list as of the last successful Reload
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.items...)
}

func (c *Controller[T]) Buffer() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer
}

func (c *Controller[T]) Mode() ImageMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// PendingFile returns the selected file name, empty when none
func (c *Controller[T]) PendingFile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.file == nil {
		return ""
	}
	return c.file.FileName
}

func (c *Controller[T]) PendingLink() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.link
}

// LastError is the server message of the last failed mutation
func (c *Controller[T]) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Controller[T]) IsDeletePending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deletes[id]
}

// Reload replaces Items with the server list
func (c *Controller[T]) Reload(ctx context.Context) error {
	if !c.gate.Authenticated() {
		return ErrNotAuthenticated
	}
	items, err := c.client.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *Controller[T]) begin(entity T, isEdit bool) error {
	if !c.gate.Authenticated() {
		return ErrNotAuthenticated
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Idle {
		return ErrInvalidTransition
	}
	c.state = Editing
	c.isEdit = isEdit
	c.buffer = entity
	c.file = nil
	c.link = ""
	c.lastErr = ""
	c.mode = ModeUpload
	if image := entity.GetImage(); image != "" && !media.IsLocal(image) {
		c.mode = ModeLink
	}
	return nil
}

// BeginAdd seeds an empty buffer with no identity
func (c *Controller[T]) BeginAdd() error {
	var zero T
	return c.begin(zero, false)
}

// BeginEdit seeds the buffer with a copy of entity
func (c *Controller[T]) BeginEdit(entity T) error {
	return c.begin(entity, true)
}

// Cancel drops the buffer
func (c *Controller[T]) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing {
		return ErrInvalidTransition
	}
	c.reset()
	return nil
}

// Edit changes buffer fields
func (c *Controller[T]) Edit(fn func(buffer *T)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing {
		return ErrInvalidTransition
	}
	fn(&c.buffer)
	return nil
}

// SelectFile picks an upload and clears any pasted link
func (c *Controller[T]) SelectFile(name string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing {
		return ErrInvalidTransition
	}
	c.file = &Attachment{FileName: name, File: data}
	c.link = ""
	c.mode = ModeUpload
	return nil
}

// PasteLink sets an external image URL and clears any selected file
func (c *Controller[T]) PasteLink(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing {
		return ErrInvalidTransition
	}
	c.link = url
	c.file = nil
	c.mode = ModeLink
	return nil
}

// SetImageMode flips the toggle, clearing the pending value of the other mode
func (c *Controller[T]) SetImageMode(mode ImageMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Editing {
		return ErrInvalidTransition
	}
	c.mode = mode
	if mode == ModeUpload {
		c.link = ""
	} else {
		c.file = nil
	}
	return nil
}

func (c *Controller[T]) attachment() (Attachment, error) {
	switch {
	case c.mode == ModeUpload && c.file != nil && len(c.file.File) > 0:
		return *c.file, nil
	case c.mode == ModeLink && strings.TrimSpace(c.link) != "":
		return Attachment{Link: strings.TrimSpace(c.link)}, nil
	case c.isEdit && c.buffer.GetImage() != "":
		return Attachment{}, nil
	}
	return Attachment{}, domain.ErrMissingImage
}

// Submit sends the buffer. Success resets to Idle and reloads the list,
// failure returns to Editing with the buffer untouched.
func (c *Controller[T]) Submit(ctx context.Context) error {
	if !c.gate.Authenticated() {
		return ErrNotAuthenticated
	}
	c.mu.Lock()
	if c.state != Editing {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	att, err := c.attachment()
	if err != nil {
		c.lastErr = err.Error()
		c.mu.Unlock()
		return err
	}
	c.state = Submitting
	entity, isEdit := c.buffer, c.isEdit
	c.mu.Unlock()

	if isEdit {
		err = c.client.Update(ctx, entity, att)
	} else {
		err = c.client.Create(ctx, entity, att)
	}

	c.mu.Lock()
	if err != nil {
		c.state = Editing
		c.lastErr = err.Error()
		c.mu.Unlock()
		return err
	}
	c.reset()
	c.mu.Unlock()
	return c.Reload(ctx)
}

func (c *Controller[T]) reset() {
	var zero T
	c.state = Idle
	c.isEdit = false
	c.buffer = zero
	c.file = nil
	c.link = ""
	c.mode = ModeUpload
	c.lastErr = ""
}

// Delete removes id. A second delete for the same id is rejected until the first resolves.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if !c.gate.Authenticated() {
		return ErrNotAuthenticated
	}
	c.mu.Lock()
	if c.deletes[id] {
		c.mu.Unlock()
		return ErrDeletePending
	}
	c.deletes[id] = true
	c.mu.Unlock()

	err := c.client.Delete(ctx, id)

	c.mu.Lock()
	delete(c.deletes, id)
	if err != nil {
		c.lastErr = err.Error()
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.Reload(ctx)
}
