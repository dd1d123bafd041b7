package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vesaa/maderas/internal/models"
)

// SubmitErrorMessage is the only message a visitor sees when a submission
// fails, whatever the cause.
const SubmitErrorMessage = "Error al enviar el formulario. Por favor inténtalo de nuevo."

// DefaultSuccessDisplay is how long the success banner stays before the
// form returns to Idle.
const DefaultSuccessDisplay = 3 * time.Second

// ErrSubmissionInProgress is returned by Submit while a previous
// submission has not settled.
var ErrSubmissionInProgress = errors.New("contact: submission already in progress")

// Gateway delivers a contact inquiry. A nil error means the inquiry was
// accepted.
type Gateway interface {
	Submit(ctx context.Context, inq models.Inquiry) error
}

// GatewayFunc adapts a function to Gateway.
type GatewayFunc func(ctx context.Context, inq models.Inquiry) error

func (f GatewayFunc) Submit(ctx context.Context, inq models.Inquiry) error { return f(ctx, inq) }

// Status is the state of the contact workflow.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ContactFields are the five user-editable inputs. The form tags match the
// posted field names.
type ContactFields struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Phone    string `form:"phone"`
	WoodType string `form:"woodType"`
	Message  string `form:"message" validate:"required"`
}

func (f ContactFields) inquiry() models.Inquiry {
	return models.Inquiry{
		Name:     f.Name,
		Email:    f.Email,
		Phone:    f.Phone,
		WoodType: f.WoodType,
		Message:  f.Message,
		Source:   "web",
	}
}

// ContactFormState is a consistent copy of the form and its workflow flags.
type ContactFormState struct {
	ContactFields
	Status          Status
	IsSubmitting    bool
	SubmitSucceeded bool
	SubmitError     string // empty when there is no error
}

// ContactOption configures a Contact.
type ContactOption func(*Contact)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) ContactOption {
	return func(c *Contact) { c.sched = s }
}

// WithSuccessDisplay sets how long Succeeded lasts before reverting to Idle.
func WithSuccessDisplay(d time.Duration) ContactOption {
	return func(c *Contact) { c.successDisplay = d }
}

// WithLogger sets the logger used for submission outcomes.
func WithLogger(l *slog.Logger) ContactOption {
	return func(c *Contact) { c.log = l }
}

// Contact owns the contact form and its submission workflow:
//
//	Idle ──Submit──▶ Submitting ──ok──▶ Succeeded ──timer──▶ Idle
//	  ▲                  │
//	  └──── Failed ◀─fault┘   (Failed ──Submit──▶ Submitting)
//
// Submit returns once the form is Submitting; the gateway runs on its own
// goroutine with a context that is never cancelled.
type Contact struct {
	gateway        Gateway
	sched          Scheduler
	successDisplay time.Duration
	log            *slog.Logger

	mu          sync.Mutex
	fields      ContactFields
	status      Status
	submitError string
	attempt     uint64
	revert      Timer
	closed      bool
	subs        map[int]func(ContactFormState)
	nextSub     int

	inflight sync.WaitGroup
}

// NewContact mounts a blank form that submits through gw.
func NewContact(gw Gateway, opts ...ContactOption) *Contact {
	c := &Contact{
		gateway:        gw,
		sched:          SystemScheduler{},
		successDisplay: DefaultSuccessDisplay,
		subs:           make(map[int]func(ContactFormState)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	return c
}

// SetFields records user input.
func (c *Contact) SetFields(f ContactFields) {
	c.mu.Lock()
	c.fields = f
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// Snapshot returns the current form state.
func (c *Contact) Snapshot() ContactFormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Status returns the workflow state.
func (c *Contact) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Submit validates the form and, if it is valid, starts a submission.
//
// Invalid fields return ValidationErrors and leave the state untouched.
// A call while Submitting returns ErrSubmissionInProgress.
func (c *Contact) Submit(ctx context.Context) error {
	c.mu.Lock()
	return c.submitLocked(ctx, nil)
}

// SubmitFields records f and submits it in one step. While Submitting, f is
// discarded and ErrSubmissionInProgress returned, so the fields of the
// submission in flight are kept.
func (c *Contact) SubmitFields(ctx context.Context, f ContactFields) error {
	c.mu.Lock()
	return c.submitLocked(ctx, &f)
}

// submitLocked runs with c.mu held and releases it.
func (c *Contact) submitLocked(ctx context.Context, f *ContactFields) error {
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return ErrSubmissionInProgress
	}
	if f != nil {
		c.fields = *f
	}
	if errs := Validate(c.fields); errs != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		if f != nil {
			c.publish(snap)
		}
		return errs
	}

	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
	c.attempt++
	c.status = StatusSubmitting
	c.submitError = ""
	attempt := c.attempt
	inq := c.fields.inquiry()
	snap := c.snapshotLocked()
	c.inflight.Add(1)
	c.mu.Unlock()

	c.publish(snap)
	go c.deliver(context.WithoutCancel(ctx), attempt, inq)
	return nil
}

func (c *Contact) deliver(ctx context.Context, attempt uint64, inq models.Inquiry) {
	defer c.inflight.Done()

	start := time.Now()
	err := c.call(ctx, inq)

	c.mu.Lock()
	if err != nil {
		c.status = StatusFailed
		c.submitError = SubmitErrorMessage
	} else {
		c.status = StatusSucceeded
		c.fields = ContactFields{}
		if !c.closed {
			c.revert = c.sched.AfterFunc(c.successDisplay, func() { c.expireSuccess(attempt) })
		}
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("contact submission failed",
			slog.Any("error", err),
			slog.Duration("elapsed", time.Since(start)))
	} else {
		c.log.Info("contact submission accepted",
			slog.String("wood_type", inq.WoodType),
			slog.Duration("elapsed", time.Since(start)))
	}
	c.publish(snap)
}

// call invokes the gateway and turns a panic into a fault.
func (c *Contact) call(ctx context.Context, inq models.Inquiry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gateway panic: %v", r)
		}
	}()
	return c.gateway.Submit(ctx, inq)
}

func (c *Contact) expireSuccess(attempt uint64) {
	c.mu.Lock()
	if c.attempt != attempt || c.status != StatusSucceeded {
		c.mu.Unlock()
		return
	}
	c.status = StatusIdle
	c.revert = nil
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
}

// Subscribe registers fn to run after every state change. The returned
// func removes it.
func (c *Contact) Subscribe(fn func(ContactFormState)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Contact) publish(s ContactFormState) {
	c.mu.Lock()
	subs := make([]func(ContactFormState), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

// Close unmounts the form: the success timer is stopped and no new one is
// scheduled. A submission already in flight still settles; use Wait to
// block for it.
func (c *Contact) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.revert != nil {
		c.revert.Stop()
		c.revert = nil
	}
}

// Wait blocks until every started submission has settled.
func (c *Contact) Wait() {
	c.inflight.Wait()
}

func (c *Contact) snapshotLocked() ContactFormState {
	return ContactFormState{
		ContactFields:   c.fields,
		Status:          c.status,
		IsSubmitting:    c.status == StatusSubmitting,
		SubmitSucceeded: c.status == StatusSucceeded,
		SubmitError:     c.submitError,
	}
}
