package system

import "time"

// Metrics provides runtime metrics for a system.
type Metrics struct {
	Invocations       uint64
	ErrorCount        uint64
	EntitiesProcessed uint64
	LastEntities      int
	LastTick          uint64
	LastDuration      time.Duration
	TotalDuration     time.Duration
	LastError         error
}

func (m *Metrics) record(tick uint64, entities int, took time.Duration, err error) {
	m.Invocations++
	m.LastTick = tick
	m.LastEntities = entities
	m.EntitiesProcessed += uint64(entities)
	m.LastDuration = took
	m.TotalDuration += took
	if err != nil {
		m.ErrorCount++
		m.LastError = err
	}
}
