package wait

import (
	"context"
	"errors"
	"testing"
	"time"

	"pom_automation/domain/entities"
	"pom_automation/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubElement struct{}

func (stubElement) Click(context.Context) error            { return nil }
func (stubElement) TypeText(context.Context, string) error { return nil }
func (stubElement) Text(context.Context) (string, error)   { return "", nil }

func TestPoll_ReturnsOnceLookupSucceeds(t *testing.T) {
	calls := 0
	el, err := Poll(context.Background(), time.Second, 5*time.Millisecond, func(context.Context) (interfaces.Element, error) {
		calls++
		if calls < 3 {
			return nil, entities.ErrElementNotFound
		}
		return stubElement{}, nil
	})

	require.NoError(t, err)
	assert.NotNil(t, el)
	assert.Equal(t, 3, calls)
}

func TestPoll_TimesOutWithNotFound(t *testing.T) {
	start := time.Now()
	_, err := Poll(context.Background(), 30*time.Millisecond, 5*time.Millisecond, func(context.Context) (interfaces.Element, error) {
		return nil, entities.ErrElementNotFound
	})

	require.ErrorIs(t, err, entities.ErrElementNotFound)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestPoll_StopsOnOtherErrors(t *testing.T) {
	boom := errors.New("session gone")
	calls := 0
	_, err := Poll(context.Background(), time.Second, 5*time.Millisecond, func(context.Context) (interfaces.Element, error) {
		calls++
		return nil, boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestPoll_ZeroTimeoutLooksUpOnce(t *testing.T) {
	calls := 0
	_, err := Poll(context.Background(), 0, 0, func(context.Context) (interfaces.Element, error) {
		calls++
		return nil, entities.ErrElementNotFound
	})

	require.ErrorIs(t, err, entities.ErrElementNotFound)
	assert.Equal(t, 1, calls)
}

func TestPoll_HonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := Poll(ctx, time.Minute, 5*time.Millisecond, func(context.Context) (interfaces.Element, error) {
		return nil, entities.ErrElementNotFound
	})

	require.ErrorIs(t, err, context.Canceled)
}
