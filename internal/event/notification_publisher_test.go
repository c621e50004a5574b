package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationPublisher_GetMetrics(t *testing.T) {
	p := NewNotificationPublisher(&RabbitMQConnection{})

	metrics := p.GetMetrics()
	assert.Equal(t, int64(0), metrics["messages_published"])
	assert.Equal(t, int64(0), metrics["messages_failed"])
	assert.Equal(t, ClaimEventQueue, metrics["queue"])
	require.Contains(t, metrics, "last_publish_time")
}
