package page

import (
	"context"
	"sync"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"
)

// Recorder wraps a driver and journals every interaction made through it, in order.
// Attempts are recorded whether or not they succeed.
type Recorder struct {
	inner interfaces.Driver

	mu           sync.Mutex
	interactions []entities.Interaction
}

// NewRecorder - wraps driver
func NewRecorder(driver interfaces.Driver) *Recorder {
	return &Recorder{inner: driver}
}

// Interactions returns a copy of the journal
func (r *Recorder) Interactions() []entities.Interaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Interaction, len(r.interactions))
	copy(out, r.interactions)
	return out
}

// Reset clears the journal
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = nil
}

func (r *Recorder) record(in entities.Interaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.interactions = append(r.interactions, in)
}

func (r *Recorder) Open(ctx context.Context, target string) error {
	r.record(entities.Interaction{Type: entities.InteractionOpen, Text: target})
	return r.inner.Open(ctx, target)
}

func (r *Recorder) Find(ctx context.Context, locator entities.Locator) (interfaces.Element, error) {
	r.record(entities.Interaction{Type: entities.InteractionWait, Locator: locator})
	el, err := r.inner.Find(ctx, locator)
	if err != nil {
		return nil, err
	}
	return &recordedElement{inner: el, locator: locator, rec: r}, nil
}

func (r *Recorder) WaitUntilPresent(ctx context.Context, locator entities.Locator, timeout time.Duration) (interfaces.Element, error) {
	r.record(entities.Interaction{Type: entities.InteractionWait, Locator: locator})
	el, err := r.inner.WaitUntilPresent(ctx, locator, timeout)
	if err != nil {
		return nil, err
	}
	return &recordedElement{inner: el, locator: locator, rec: r}, nil
}

func (r *Recorder) Back(ctx context.Context) error {
	r.record(entities.Interaction{Type: entities.InteractionBack})
	return r.inner.Back(ctx)
}

func (r *Recorder) Close() error {
	return r.inner.Close()
}

type recordedElement struct {
	inner   interfaces.Element
	locator entities.Locator
	rec     *Recorder
}

func (e *recordedElement) Click(ctx context.Context) error {
	e.rec.record(entities.Interaction{Type: entities.InteractionTap, Locator: e.locator})
	return e.inner.Click(ctx)
}

func (e *recordedElement) TypeText(ctx context.Context, text string) error {
	e.rec.record(entities.Interaction{Type: entities.InteractionEnter, Locator: e.locator, Text: text})
	return e.inner.TypeText(ctx, text)
}

func (e *recordedElement) Text(ctx context.Context) (string, error) {
	e.rec.record(entities.Interaction{Type: entities.InteractionRead, Locator: e.locator})
	return e.inner.Text(ctx)
}

var _ interfaces.Driver = (*Recorder)(nil)
