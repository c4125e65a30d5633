package provider

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuotaBookUncappedAlwaysAllows(t *testing.T) {
	q := NewQuotaBook()
	for i := 0; i < 100; i++ {
		assert.True(t, q.Allow("anything"))
	}
	assert.Equal(t, -1, q.Remaining("anything"))
}

func TestQuotaBookDeniesOverLimit(t *testing.T) {
	q := NewQuotaBook()
	q.SetLimit("p", 2)

	assert.True(t, q.Allow("p"))
	assert.True(t, q.Allow("p"))
	assert.False(t, q.Allow("p"))
	assert.Equal(t, 0, q.Remaining("p"))
}

func TestQuotaBookWindowReset(t *testing.T) {
	q := NewQuotaBook()
	now := time.Now()
	q.now = func() time.Time { return now }
	q.SetLimit("p", 1)

	assert.True(t, q.Allow("p"))
	assert.False(t, q.Allow("p"))

	now = now.Add(quotaWindow + time.Second)
	assert.True(t, q.Allow("p"))
	assert.Equal(t, 0, q.Remaining("p"))
}

func TestQuotaBookRemoveLimit(t *testing.T) {
	q := NewQuotaBook()
	q.SetLimit("p", 1)
	assert.True(t, q.Allow("p"))
	assert.False(t, q.Allow("p"))

	q.SetLimit("p", 0)
	assert.True(t, q.Allow("p"))
}

func TestQuotaBookDeniedCallNotCounted(t *testing.T) {
	q := NewQuotaBook()
	now := time.Now()
	q.now = func() time.Time { return now }
	q.SetLimit("p", 1)

	assert.True(t, q.Allow("p"))
	for i := 0; i < 5; i++ {
		assert.False(t, q.Allow("p"))
	}

	// Window rolls over; a fresh call succeeds immediately.
	now = now.Add(quotaWindow)
	assert.True(t, q.Allow("p"))
}
