package frontier_test

import (
	"testing"

	"github.com/CrazyVinc/web-scraper/internal/frontier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_TryAdmitOnlyOnce(t *testing.T) {
	ledger := frontier.NewLedger()

	assert.True(t, ledger.TryAdmit("https://ex.com"))
	assert.False(t, ledger.TryAdmit("https://ex.com"))
	assert.True(t, ledger.Seen("https://ex.com"))
	assert.False(t, ledger.Seen("https://ex.com/a"))
	assert.Equal(t, 1, ledger.VisitedCount())
}

func TestLedger_DequeueIfCapacity(t *testing.T) {
	ledger := frontier.NewLedger()
	ledger.Enqueue(frontier.NewWorkItem("https://ex.com/a", 1))
	ledger.Enqueue(frontier.NewWorkItem("https://ex.com/b", 1))
	ledger.Enqueue(frontier.NewWorkItem("https://ex.com/c", 1))

	item, ok := ledger.DequeueIfCapacity(2)
	require.True(t, ok)
	assert.Equal(t, "https://ex.com/a", item.URL())
	ledger.MarkActive()

	item, ok = ledger.DequeueIfCapacity(2)
	require.True(t, ok)
	assert.Equal(t, "https://ex.com/b", item.URL())
	ledger.MarkActive()

	// at capacity: nothing is popped and the queue is untouched
	_, ok = ledger.DequeueIfCapacity(2)
	assert.False(t, ok)
	assert.Equal(t, 1, ledger.Pending())

	ledger.MarkDone()
	item, ok = ledger.DequeueIfCapacity(2)
	require.True(t, ok)
	assert.Equal(t, "https://ex.com/c", item.URL())
	assert.Equal(t, 1, item.Depth())
}

func TestLedger_IsDrained(t *testing.T) {
	ledger := frontier.NewLedger()
	assert.True(t, ledger.IsDrained())

	ledger.Enqueue(frontier.NewWorkItem("https://ex.com", 0))
	assert.False(t, ledger.IsDrained(), "pending work")

	_, ok := ledger.DequeueIfCapacity(1)
	require.True(t, ok)
	ledger.MarkActive()
	assert.False(t, ledger.IsDrained(), "fetch in flight")

	ledger.MarkDone()
	assert.True(t, ledger.IsDrained())
}

func TestLedger_MarkDoneNeverNegative(t *testing.T) {
	ledger := frontier.NewLedger()
	ledger.MarkDone()
	assert.Equal(t, 0, ledger.Active())
}

func TestLedger_DropPending(t *testing.T) {
	ledger := frontier.NewLedger()
	ledger.Enqueue(frontier.NewWorkItem("https://ex.com/a", 1))
	ledger.Enqueue(frontier.NewWorkItem("https://ex.com/b", 1))

	assert.Equal(t, 2, ledger.DropPending())
	assert.True(t, ledger.IsDrained())
}
