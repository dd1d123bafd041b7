package site

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesaa/maderas/internal/models"
)

func newTestContact(gw Gateway) (*Contact, *manualScheduler) {
	sched := &manualScheduler{}
	return NewContact(gw, WithScheduler(sched)), sched
}

func TestContact_StartsIdleAndBlank(t *testing.T) {
	c, _ := newTestContact(newGate())
	s := c.Snapshot()

	assert.Equal(t, StatusIdle, s.Status)
	assert.Equal(t, ContactFields{}, s.ContactFields)
	assert.False(t, s.IsSubmitting)
	assert.False(t, s.SubmitSucceeded)
	assert.Empty(t, s.SubmitError)
}

func TestContact_SuccessfulSubmission(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))

	s := c.Snapshot()
	assert.Equal(t, StatusSubmitting, s.Status)
	assert.True(t, s.IsSubmitting)
	assert.False(t, s.SubmitSucceeded)

	inq := <-gw.got
	assert.Equal(t, "Ana", inq.Name)
	assert.Equal(t, "ana@example.com", inq.Email)
	assert.Equal(t, "Hola", inq.Message)
	assert.Equal(t, "web", inq.Source)

	gw.release <- nil
	s = waitStatus(t, events, StatusSucceeded)
	assert.False(t, s.IsSubmitting)
	assert.True(t, s.SubmitSucceeded)
	assert.Equal(t, ContactFields{}, s.ContactFields, "fields are cleared on success")

	timers := sched.pending()
	require.Len(t, timers, 1)
	assert.Equal(t, DefaultSuccessDisplay, timers[0].d)

	sched.fireAll()
	s = c.Snapshot()
	assert.Equal(t, StatusIdle, s.Status)
	assert.False(t, s.SubmitSucceeded)
	assert.Equal(t, ContactFields{}, s.ContactFields)
	assert.Empty(t, s.SubmitError)

	c.Close()
	c.Wait()
}

func TestContact_InvalidInputIsNoOp(t *testing.T) {
	tests := []struct {
		name   string
		fields ContactFields
		flags  []string
	}{
		{"missing name", ContactFields{Email: "ana@example.com", Message: "Hola"}, []string{"name"}},
		{"missing email", ContactFields{Name: "Ana", Message: "Hola"}, []string{"email"}},
		{"malformed email", ContactFields{Name: "Ana", Email: "bad", Message: "Hola"}, []string{"email"}},
		{"missing message", ContactFields{Name: "Ana", Email: "ana@example.com"}, []string{"message"}},
		{"everything wrong", ContactFields{Email: "bad"}, []string{"name", "email", "message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newGate()
			c, sched := newTestContact(gw)
			c.SetFields(tt.fields)

			err := c.Submit(context.Background())

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Len(t, verrs, len(tt.flags))
			for _, f := range tt.flags {
				assert.True(t, verrs.Has(f), "expected flag on %s", f)
			}

			s := c.Snapshot()
			assert.Equal(t, StatusIdle, s.Status)
			assert.False(t, s.IsSubmitting)
			assert.Empty(t, s.SubmitError)
			assert.Equal(t, tt.fields, s.ContactFields, "fields are kept for correction")
			assert.Zero(t, gw.calls.Load())
			assert.Empty(t, sched.all())
		})
	}
}

func TestContact_OptionalFieldsAreUnconstrained(t *testing.T) {
	f := validFields
	f.Phone = "not a phone"
	f.WoodType = "anything"
	assert.Nil(t, Validate(f))
}

func TestContact_GatewayFault(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)
	events := watch(t, c)

	fields := validFields
	fields.Phone = "+34 600 000 000"
	fields.WoodType = "Madera de Cedro"
	c.SetFields(fields)
	require.NoError(t, c.Submit(context.Background()))
	<-gw.got
	gw.release <- errors.New("crm unreachable")

	s := waitStatus(t, events, StatusFailed)
	assert.False(t, s.IsSubmitting)
	assert.False(t, s.SubmitSucceeded)
	assert.Equal(t, SubmitErrorMessage, s.SubmitError)
	assert.Equal(t, fields, s.ContactFields, "fields are preserved on failure")
	assert.Empty(t, sched.all(), "no success timer after a failure")

	c.Wait()
}

func TestContact_GatewayPanicIsAFault(t *testing.T) {
	c, _ := newTestContact(GatewayFunc(func(context.Context, models.Inquiry) error {
		panic("boom")
	}))
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))

	s := waitStatus(t, events, StatusFailed)
	assert.False(t, s.IsSubmitting)
	assert.Equal(t, SubmitErrorMessage, s.SubmitError)
	c.Wait()
}

func TestContact_RetryAfterFailureClearsError(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	<-gw.got
	gw.release <- errors.New("timeout")
	waitStatus(t, events, StatusFailed)

	require.NoError(t, c.Submit(context.Background()))
	s := c.Snapshot()
	assert.Equal(t, StatusSubmitting, s.Status)
	assert.Empty(t, s.SubmitError, "error is cleared when a new attempt starts")

	<-gw.got
	gw.release <- nil
	waitStatus(t, events, StatusSucceeded)
	sched.fireAll()
	assert.Equal(t, StatusIdle, c.Status())
	c.Wait()
}

func TestContact_InvalidRetryKeepsFailure(t *testing.T) {
	gw := newGate()
	c, _ := newTestContact(gw)
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	<-gw.got
	gw.release <- errors.New("timeout")
	waitStatus(t, events, StatusFailed)

	c.SetFields(ContactFields{Name: "Ana"})
	require.Error(t, c.Submit(context.Background()))
	s := c.Snapshot()
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, SubmitErrorMessage, s.SubmitError)
	c.Wait()
}

func TestContact_ReentryIsRejected(t *testing.T) {
	gw := newGate()
	c, _ := newTestContact(gw)
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	<-gw.got

	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.Equal(t, int32(1), gw.calls.Load(), "no second submission starts")
	assert.Equal(t, StatusSubmitting, c.Status())

	gw.release <- nil
	waitStatus(t, events, StatusSucceeded)
	c.Close()
	c.Wait()
}

func TestContact_RequestCancellationDoesNotAbortSubmission(t *testing.T) {
	var gotErr error
	c, _ := newTestContact(GatewayFunc(func(ctx context.Context, _ models.Inquiry) error {
		time.Sleep(10 * time.Millisecond)
		gotErr = ctx.Err()
		return nil
	}))
	events := watch(t, c)

	ctx, cancel := context.WithCancel(context.Background())
	c.SetFields(validFields)
	require.NoError(t, c.Submit(ctx))
	cancel()

	waitStatus(t, events, StatusSucceeded)
	c.Wait()
	assert.NoError(t, gotErr)
	c.Close()
}

func TestContact_CloseStopsSuccessTimer(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	<-gw.got
	gw.release <- nil
	waitStatus(t, events, StatusSucceeded)
	require.Len(t, sched.pending(), 1)

	c.Close()
	assert.Empty(t, sched.pending())
	c.Wait()
}

func TestContact_CloseBeforeSettleSchedulesNothing(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	<-gw.got
	c.Close()
	gw.release <- nil

	waitStatus(t, events, StatusSucceeded)
	c.Wait()
	assert.Empty(t, sched.all())
}

func TestContact_StaleSuccessTimerIsIgnored(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)
	events := watch(t, c)

	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	<-gw.got
	gw.release <- nil
	waitStatus(t, events, StatusSucceeded)
	first := sched.all()[0]

	// A second submission during the success window supersedes the first.
	c.SetFields(validFields)
	require.NoError(t, c.Submit(context.Background()))
	assert.False(t, c.Snapshot().SubmitSucceeded)
	<-gw.got
	gw.release <- nil
	// SetFields above published a Succeeded snapshot of the first attempt;
	// wait for the second attempt itself to settle.
	c.Wait()
	require.Equal(t, StatusSucceeded, c.Status())
	require.Len(t, sched.pending(), 1)

	first.f()
	assert.Equal(t, StatusSucceeded, c.Status(), "the first timer must not end the second banner")

	sched.fireAll()
	assert.Equal(t, StatusIdle, c.Status())
	c.Wait()
}

func TestContact_FlagsNeverBothTrue(t *testing.T) {
	gw := newGate()
	c, sched := newTestContact(gw)

	var mu sync.Mutex
	var seen []ContactFormState
	unsub := c.Subscribe(func(s ContactFormState) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})
	defer unsub()
	events := watch(t, c)

	for i := 0; i < 3; i++ {
		c.SetFields(validFields)
		require.NoError(t, c.Submit(context.Background()))
		<-gw.got
		if i == 1 {
			gw.release <- errors.New("fault")
			waitStatus(t, events, StatusFailed)
			continue
		}
		gw.release <- nil
		waitStatus(t, events, StatusSucceeded)
		sched.fireAll()
	}
	c.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	for _, s := range seen {
		assert.False(t, s.IsSubmitting && s.SubmitSucceeded, "state %+v", s)
		if s.Status != StatusFailed {
			assert.Empty(t, s.SubmitError, "state %+v", s)
		}
	}
}

func TestContact_UnsubscribeStopsNotifications(t *testing.T) {
	c, _ := newTestContact(newGate())
	calls := 0
	unsub := c.Subscribe(func(ContactFormState) { calls++ })

	c.SetFields(validFields)
	unsub()
	c.SetFields(ContactFields{})

	assert.Equal(t, 1, calls)
}

// Timed scenario with the real scheduler: Submitting for the gateway's
// latency, Succeeded with cleared fields, then Idle after the display time.
func TestContact_TimedScenario(t *testing.T) {
	const latency = 40 * time.Millisecond
	const display = 60 * time.Millisecond

	c := NewContact(GatewayFunc(func(context.Context, models.Inquiry) error {
		time.Sleep(latency)
		return nil
	}), WithSuccessDisplay(display))
	events := watch(t, c)

	c.SetFields(ContactFields{Name: "Ana", Email: "ana@example.com", Message: "Hola"})
	start := time.Now()
	require.NoError(t, c.Submit(context.Background()))
	assert.True(t, c.Snapshot().IsSubmitting)

	s := waitStatus(t, events, StatusSucceeded)
	assert.GreaterOrEqual(t, time.Since(start), latency)
	assert.Equal(t, ContactFields{}, s.ContactFields)

	succeededAt := time.Now()
	waitStatus(t, events, StatusIdle)
	assert.GreaterOrEqual(t, time.Since(succeededAt), display-10*time.Millisecond)
	c.Wait()
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "submitting", StatusSubmitting.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "status(9)", Status(9).String())
}

func TestContact_SubmitFieldsWhileSubmittingKeepsInFlightFields(t *testing.T) {
	gw := newGate()
	c, _ := newTestContact(gw)
	events := watch(t, c)

	require.NoError(t, c.SubmitFields(context.Background(), validFields))
	<-gw.got

	other := ContactFields{Name: "Luis", Email: "luis@example.com", Message: "Otro"}
	err := c.SubmitFields(context.Background(), other)
	assert.ErrorIs(t, err, ErrSubmissionInProgress)
	assert.Equal(t, validFields, c.Snapshot().ContactFields)

	gw.release <- errors.New("crm unreachable")
	s := waitStatus(t, events, StatusFailed)
	assert.Equal(t, validFields, s.ContactFields, "the failed form shows what was submitted")
	c.Wait()
}

func TestContact_SubmitFieldsInvalidKeepsInput(t *testing.T) {
	c, _ := newTestContact(newGate())
	events := watch(t, c)

	bad := ContactFields{Name: "Ana", Email: "bad"}
	err := c.SubmitFields(context.Background(), bad)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.Has("email"))
	assert.Equal(t, bad, c.Snapshot().ContactFields)
	assert.Equal(t, bad, (<-events).ContactFields, "the new input is published")
}
