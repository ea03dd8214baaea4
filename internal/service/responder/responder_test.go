package responder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoReply(t *testing.T) {
	var r Responder = Echo{}

	reply, err := r.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "You said: hello", reply)
	assert.Equal(t, "echo", r.Name())
}
