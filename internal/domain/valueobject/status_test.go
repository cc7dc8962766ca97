package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/payout-admin/internal/pkg/apperror"
)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"pending":    StatusPending,
		"PENDING":    StatusPending,
		"Pending":    StatusPending,
		"processing": StatusProcessing,
		"COMPLETED":  StatusCompleted,
		"rejected":   StatusRejected,
		"ProCessed":  StatusProcessed,
		"banana":     "Banana",
		"bANANA":     "Banana",
		"":           StatusUnknown,
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), "input %q", in)
	}
}

func TestNormalizeStatus_Idempotent(t *testing.T) {
	for _, label := range []string{StatusPending, StatusProcessing, StatusCompleted, StatusRejected, StatusProcessed, StatusUnknown, "Banana"} {
		assert.Equal(t, label, NormalizeStatus(label))
		assert.Equal(t, NormalizeStatus(label), NormalizeStatus(NormalizeStatus(label)))
	}
}

func TestNormalizeStatus_MultibyteFirstRune(t *testing.T) {
	assert.Equal(t, "Ожидание", NormalizeStatus("оЖИДАНИЕ"))
}

func TestIsFinalisingStatus(t *testing.T) {
	assert.True(t, IsFinalisingStatus(StatusCompleted))
	assert.True(t, IsFinalisingStatus(StatusRejected))
	assert.False(t, IsFinalisingStatus(StatusProcessing))
	assert.False(t, IsFinalisingStatus(StatusProcessed))
	assert.False(t, IsFinalisingStatus("completed"))
}

func TestParseAction(t *testing.T) {
	cases := map[string]string{
		"process":        StatusProcessing,
		"Approve":        StatusCompleted,
		"REJECT":         StatusRejected,
		"mark-processed": StatusProcessed,
	}
	for raw, want := range cases {
		action, err := ParseAction(raw)
		require.NoError(t, err)
		target, err := action.TargetStatus()
		require.NoError(t, err)
		assert.Equal(t, want, target)
	}

	_, err := ParseAction("delete")
	assert.True(t, apperror.IsValidation(err))

	_, err = Action("Delete").TargetStatus()
	assert.True(t, apperror.IsValidation(err))
}

func TestAvailableActions(t *testing.T) {
	assert.Equal(t, []Action{ActionProcess, ActionApprove, ActionReject}, AvailableActions("pending"))
	assert.Equal(t, []Action{ActionMarkProcessed}, AvailableActions("Processing"))
	assert.Equal(t, []Action{ActionMarkProcessed}, AvailableActions("completed"))
	assert.Equal(t, []Action{ActionMarkProcessed}, AvailableActions("Rejected"))
	assert.Empty(t, AvailableActions("processed"))
}
