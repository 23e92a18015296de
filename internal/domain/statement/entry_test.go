package statement

import (
	"testing"
	"time"

	"github.com/banking-transfer-api/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntriesFromEvent(t *testing.T) {
	txID := int64(12)
	src, dst := int64(1), int64(2)
	occurred := time.Now().Add(-time.Second).UTC()
	recorded := time.Now().UTC()
	event := &shared.BalanceEvent{
		EventID:       uuid.New(),
		Type:          shared.EventTypeTransferCompleted,
		TransactionID: &txID,
		Movements: []shared.BalanceMovement{
			{AccountID: src, Kind: shared.MovementTransferOut, Amount: 200, BalanceAfter: 800, CounterpartyAccountID: &dst},
			{AccountID: dst, Kind: shared.MovementTransferIn, Amount: 200, BalanceAfter: 700, CounterpartyAccountID: &src},
		},
		CorrelationID: "corr-9",
		OccurredAt:    occurred,
	}

	entries := EntriesFromEvent(event, recorded)

	require.Len(t, entries, 2)
	assert.Equal(t, event.EventID.String(), entries[0].EventID)
	assert.Equal(t, src, entries[0].AccountID)
	assert.Equal(t, shared.MovementTransferOut, entries[0].Movement)
	assert.Equal(t, int64(800), entries[0].BalanceAfter)
	assert.Equal(t, dst, *entries[0].CounterpartyAccountID)
	assert.Equal(t, dst, entries[1].AccountID)
	assert.Equal(t, int64(700), entries[1].BalanceAfter)
	for _, e := range entries {
		assert.Equal(t, txID, *e.TransactionID)
		assert.Equal(t, "corr-9", e.CorrelationID)
		assert.Equal(t, occurred, e.OccurredAt)
		assert.Equal(t, recorded, e.RecordedAt)
	}
}

func TestErrDuplicateEntry_Is(t *testing.T) {
	err := ErrDuplicateEntry{EventID: "e1", AccountID: 1}

	assert.ErrorIs(t, err, ErrDuplicateEntry{})
	assert.ErrorIs(t, err, ErrDuplicateEntry{EventID: "e1", AccountID: 1})
	assert.NotErrorIs(t, err, ErrDuplicateEntry{EventID: "e1", AccountID: 2})
}
