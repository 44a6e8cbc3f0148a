package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Type classifies a toast for styling and iconography
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
	TypeCart    Type = "cart"
	TypeBuy     Type = "buy"
	TypeSearch  Type = "search"
)

const (
	// DefaultMaxVisible is how many toasts can be on screen at once
	DefaultMaxVisible = 5
	// DefaultDuration is how long a non-persistent toast stays visible
	DefaultDuration = 4 * time.Second
)

// Action is an optional button on a toast. Invoking it runs the
// callback and dismisses the toast.
type Action struct {
	Label    string
	Callback func()
}

// Toast is one visible notification
type Toast struct {
	ID         uuid.UUID
	Message    string
	Type       Type
	Persistent bool
	Duration   time.Duration
	Action     *Action
	CreatedAt  time.Time
}

// Option customizes a single toast
type Option func(*Toast)

// WithDuration overrides the visible duration
func WithDuration(d time.Duration) Option {
	return func(t *Toast) { t.Duration = d }
}

// WithPersistent keeps the toast visible until dismissed
func WithPersistent() Option {
	return func(t *Toast) { t.Persistent = true }
}

// WithAction attaches an action button
func WithAction(label string, callback func()) Option {
	return func(t *Toast) { t.Action = &Action{Label: label, Callback: callback} }
}

// Center manages the visible toast stack. Non-persistent toasts
// dismiss themselves after their duration; pushing beyond the visible
// limit evicts the oldest toast.
type Center struct {
	mu         sync.Mutex
	toasts     []*Toast
	timers     map[uuid.UUID]*time.Timer
	maxVisible int
	duration   time.Duration
	logger     *zap.Logger
}

// NewCenter creates a notification center
func NewCenter(maxVisible int, duration time.Duration, logger *zap.Logger) *Center {
	if maxVisible < 1 {
		maxVisible = DefaultMaxVisible
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Center{
		timers:     make(map[uuid.UUID]*time.Timer),
		maxVisible: maxVisible,
		duration:   duration,
		logger:     logger,
	}
}

// Show pushes a toast and returns it
func (c *Center) Show(message string, toastType Type, opts ...Option) *Toast {
	toast := &Toast{
		ID:        uuid.New(),
		Message:   message,
		Type:      toastType,
		Duration:  c.duration,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(toast)
	}

	c.mu.Lock()
	c.toasts = append(c.toasts, toast)
	if len(c.toasts) > c.maxVisible {
		oldest := c.toasts[0]
		c.dismissLocked(oldest.ID)
	}
	if !toast.Persistent {
		id := toast.ID
		c.timers[id] = time.AfterFunc(toast.Duration, func() {
			c.Dismiss(id)
		})
	}
	c.mu.Unlock()

	c.logger.Debug("toast shown",
		zap.String("type", string(toastType)),
		zap.String("message", message))
	return toast
}

// Success shows a success toast
func (c *Center) Success(message string, opts ...Option) *Toast {
	return c.Show(message, TypeSuccess, opts...)
}

// Error shows an error toast
func (c *Center) Error(message string, opts ...Option) *Toast {
	return c.Show(message, TypeError, opts...)
}

// Warning shows a warning toast
func (c *Center) Warning(message string, opts ...Option) *Toast {
	return c.Show(message, TypeWarning, opts...)
}

// Info shows an info toast
func (c *Center) Info(message string, opts ...Option) *Toast {
	return c.Show(message, TypeInfo, opts...)
}

// Dismiss removes a toast by id
func (c *Center) Dismiss(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dismissLocked(id)
}

// DismissAll clears the whole stack
func (c *Center) DismissAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, toast := range c.toasts {
		if timer, ok := c.timers[toast.ID]; ok {
			timer.Stop()
			delete(c.timers, toast.ID)
		}
	}
	c.toasts = nil
}

// Invoke runs a toast's action callback and dismisses it. It reports
// whether the toast existed and had an action.
func (c *Center) Invoke(id uuid.UUID) bool {
	c.mu.Lock()
	var action *Action
	for _, toast := range c.toasts {
		if toast.ID == id && toast.Action != nil {
			action = toast.Action
			break
		}
	}
	if action == nil {
		c.mu.Unlock()
		return false
	}
	c.dismissLocked(id)
	c.mu.Unlock()

	// run outside the lock, the callback may show further toasts
	action.Callback()
	return true
}

// Visible returns a snapshot of the toast stack, oldest first
func (c *Center) Visible() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Toast, len(c.toasts))
	for i, toast := range c.toasts {
		out[i] = *toast
	}
	return out
}

func (c *Center) dismissLocked(id uuid.UUID) bool {
	if timer, ok := c.timers[id]; ok {
		timer.Stop()
		delete(c.timers, id)
	}
	for i, toast := range c.toasts {
		if toast.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return true
		}
	}
	return false
}
