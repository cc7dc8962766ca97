package goroutine

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryHandler_RunRecoversPanic(t *testing.T) {
	log, hook := test.NewNullLogger()
	rh := NewRecoveryHandler(log)

	assert.NotPanics(t, func() {
		rh.Run(func() { panic("boom") })
	})

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "boom", hook.LastEntry().Data["panic"])
}

func TestRecoveryHandler_SafeGoRuns(t *testing.T) {
	log, _ := test.NewNullLogger()
	done := make(chan struct{})

	NewRecoveryHandler(log).SafeGo(func() { close(done) })
	<-done
}
