package chat_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/anythingboes/studio-chat/internal/model/chat"
	chat "github.com/anythingboes/studio-chat/internal/service/chat"
)

func TestNewServiceRequiresAnswerer(t *testing.T) {
	_, err := chat.NewService(nil, zerolog.Nop())
	assert.ErrorIs(t, err, chat.ErrAnswererRequired)
}

func TestServiceOpenGetClose(t *testing.T) {
	svc, err := chat.NewService(immediate("hi", nil), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	conv, err := svc.Open(ctx, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, 1, svc.Count())

	got, err := svc.Get(ctx, conv.ID)
	require.NoError(t, err)
	assert.Same(t, conv, got)

	require.NoError(t, svc.Close(ctx, conv.ID))
	assert.Zero(t, svc.Count())

	_, err = svc.Get(ctx, conv.ID)
	assert.ErrorIs(t, err, chat.ErrConversationNotFound)
	assert.ErrorIs(t, svc.Close(ctx, conv.ID), chat.ErrConversationNotFound)
}

func TestServiceConversationsAreIsolated(t *testing.T) {
	svc, err := chat.NewService(immediate("hi", nil), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	first, err := svc.Open(ctx, nil)
	require.NoError(t, err)
	second, err := svc.Open(ctx, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	require.True(t, first.Controller.Submit(ctx, "hello"))
	first.Controller.Wait()

	assert.Len(t, first.Controller.State().History, 2)
	assert.Empty(t, second.Controller.State().History)
}

func TestServiceListenerReceivesSnapshots(t *testing.T) {
	svc, err := chat.NewService(immediate("hi", nil), zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	updates := make(chan model.State, 4)
	conv, err := svc.Open(ctx, func(s model.State) { updates <- s })
	require.NoError(t, err)

	require.True(t, conv.Controller.Submit(ctx, "hello"))
	conv.Controller.Wait()

	first := <-updates
	second := <-updates
	assert.True(t, first.Pending)
	assert.False(t, second.Pending)
	assert.Len(t, second.History, 2)
}

func TestServiceCloseWithRequestInFlight(t *testing.T) {
	answerer := newGatedAnswerer("late", nil)
	svc, err := chat.NewService(answerer, zerolog.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	conv, err := svc.Open(ctx, nil)
	require.NoError(t, err)
	require.True(t, conv.Controller.Submit(ctx, "hello"))
	<-answerer.started

	require.NoError(t, svc.Close(ctx, conv.ID))
	close(answerer.release)
	conv.Controller.Wait()

	assert.Len(t, conv.Controller.State().History, 2)
}
