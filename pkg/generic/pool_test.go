package generic

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetPoolClearsValues(t *testing.T) {
	p := NewResetPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

	buf := p.Get()
	buf.WriteString("dirty")
	p.Put(buf)
	assert.Zero(t, buf.Len())

	assert.NotNil(t, p.Get())
}
