package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordCounts_AddClampsAtZero(t *testing.T) {
	c := RecordCounts{}
	c.Add(KindOrders, 5)
	c.Add(KindOrders, -10)
	assert.Equal(t, 0, c[KindOrders])
}

func TestRecordCounts_Total(t *testing.T) {
	c := RecordCounts{KindUsers: 2, KindOrders: 35}
	assert.Equal(t, 37, c.Total())
}

func TestRecordCounts_CloneIsIndependent(t *testing.T) {
	c := RecordCounts{KindUsers: 2}
	clone := c.Clone()
	clone.Add(KindUsers, 3)
	assert.Equal(t, 2, c[KindUsers])
	assert.Equal(t, 5, clone[KindUsers])
}

func TestRecordCounts_KindsSorted(t *testing.T) {
	c := RecordCounts{KindUsers: 1, KindAuditLogs: 1, KindOrders: 1}
	assert.Equal(t, []string{KindAuditLogs, KindOrders, KindUsers}, c.Kinds())
}
