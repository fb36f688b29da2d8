package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshotReflectsRecordedCounts(t *testing.T) {
	spawnedBefore, completedBefore, sendsBefore := Snapshot()

	RecordTaskSpawned()
	RecordTaskSpawned()
	RecordTaskCompleted()
	RecordChannelSend()

	spawned, completed, sends := Snapshot()
	assert.Equal(t, spawnedBefore+2, spawned)
	assert.Equal(t, completedBefore+1, completed)
	assert.Equal(t, sendsBefore+1, sends)
}
