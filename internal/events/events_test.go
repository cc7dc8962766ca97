package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	got []Event
	err error
}

func (r *recorder) Publish(_ context.Context, ev Event) error {
	r.got = append(r.got, ev)
	return r.err
}

func TestMulti_PublishesToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{err: errors.New("offline")}

	err := Multi{a, nil, b}.Publish(context.Background(), Event{Type: TypeWithdrawalUpdated, Data: "w1"})
	assert.ErrorContains(t, err, "offline")
	assert.Len(t, a.got, 1)
	assert.Len(t, b.got, 1)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), Event{}))
}
