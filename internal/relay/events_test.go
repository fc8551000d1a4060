package relay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyboard/internal/board"
	"tinyboard/internal/protocol"
	"tinyboard/internal/rules"
)

type fakeEngine struct {
	loaded  []string
	applied []protocol.Move
	err     error
}

func (f *fakeEngine) LoadPosition(fen string) error {
	f.loaded = append(f.loaded, fen)
	return f.err
}

func (f *fakeEngine) ApplyMove(m protocol.Move) error {
	f.applied = append(f.applied, m)
	return f.err
}

func (f *fakeEngine) CurrentBoard() board.Board { return board.Board{} }
func (f *fakeEngine) FEN() string               { return "" }
func (f *fakeEngine) Turn() board.Color         { return board.White }

func TestApplyRoleEvents(t *testing.T) {
	eng := &fakeEngine{}

	s, cmd, err := Apply(State{}, eng, protocol.MustNew(protocol.EventPlayerRole, "w"))
	require.NoError(t, err)
	assert.Equal(t, board.AsWhite, s.Role)
	assert.True(t, cmd.Render)

	s, cmd, err = Apply(s, eng, protocol.MustNew(protocol.EventPlayerRole, "b"))
	require.NoError(t, err)
	assert.Equal(t, board.AsBlack, s.Role)
	assert.True(t, cmd.Render)

	s, cmd, err = Apply(s, eng, protocol.MustNew(protocol.EventSpectatorRole, nil))
	require.NoError(t, err)
	assert.True(t, s.Role.IsSpectator())
	assert.True(t, cmd.Render)

	assert.Empty(t, eng.loaded)
	assert.Empty(t, eng.applied)
}

func TestApplyBoardStateLoadsSnapshot(t *testing.T) {
	eng := &fakeEngine{}
	fen := "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
	_, cmd, err := Apply(State{}, eng, protocol.MustNew(protocol.EventBoardState, fen))
	require.NoError(t, err)
	assert.True(t, cmd.Render)
	assert.Equal(t, []string{fen}, eng.loaded)
}

func TestApplyMoveEvent(t *testing.T) {
	eng := &fakeEngine{}
	m := protocol.Move{From: "e7", To: "e5", Promotion: "q"}
	_, cmd, err := Apply(State{}, eng, protocol.MustNew(protocol.EventMove, m))
	require.NoError(t, err)
	assert.True(t, cmd.Render)
	assert.Equal(t, []protocol.Move{m}, eng.applied)
}

func TestApplyPropagatesEngineFailure(t *testing.T) {
	boom := errors.New("boom")
	eng := &fakeEngine{err: boom}

	_, cmd, err := Apply(State{}, eng, protocol.MustNew(protocol.EventBoardState, "garbage"))
	assert.ErrorIs(t, err, boom)
	assert.False(t, cmd.Render)

	_, cmd, err = Apply(State{}, eng, protocol.MustNew(protocol.EventMove, protocol.Move{From: "e2", To: "e5"}))
	assert.ErrorIs(t, err, boom)
	assert.False(t, cmd.Render)
}

func TestApplyRealEngineRejectsIllegalMove(t *testing.T) {
	eng := rules.NewGame()
	before := eng.FEN()
	_, _, err := Apply(State{}, eng, protocol.MustNew(protocol.EventMove, protocol.Move{From: "e2", To: "e5", Promotion: "q"}))
	assert.Error(t, err)
	assert.Equal(t, before, eng.FEN())
}

func TestApplyIgnoresUnknownAndInvalidMove(t *testing.T) {
	s := State{Role: board.AsWhite}
	next, cmd, err := Apply(s, &fakeEngine{}, protocol.Envelope{Event: "chat"})
	require.NoError(t, err)
	assert.Equal(t, s, next)
	assert.Equal(t, Command{}, cmd)

	next, cmd, err = Apply(s, &fakeEngine{}, protocol.MustNew(protocol.EventInvalidMove, protocol.Move{From: "e2", To: "e5"}))
	require.NoError(t, err)
	assert.Equal(t, s, next)
	assert.Equal(t, Command{}, cmd)
}

func TestApplyMalformedPayload(t *testing.T) {
	_, _, err := Apply(State{}, &fakeEngine{}, protocol.Envelope{Event: protocol.EventPlayerRole, Data: []byte(`{`)})
	assert.Error(t, err)
}
