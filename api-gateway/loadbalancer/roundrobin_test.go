package loadbalancer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinCyclesServers(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8082", "http://b:8082"})

	assert.Equal(t, "http://a:8082", rr.Next())
	assert.Equal(t, "http://b:8082", rr.Next())
	assert.Equal(t, "http://a:8082", rr.Next())
}

func TestRoundRobinFallsBackToDefault(t *testing.T) {
	rr := NewRoundRobin(nil)
	assert.NotEmpty(t, rr.Next())
}

func TestRoundRobinAddRemove(t *testing.T) {
	rr := NewRoundRobin([]string{"http://a:8082"})
	rr.AddServer("http://b:8082")
	assert.Len(t, rr.GetServers(), 2)

	rr.RemoveServer("http://a:8082")
	servers := rr.GetServers()
	assert.Equal(t, []string{"http://b:8082"}, servers)
	assert.Equal(t, "http://b:8082", rr.Next())
	assert.Equal(t, "http://b:8082", rr.Next())
}
