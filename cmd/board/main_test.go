package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyboard/internal/board"
	"tinyboard/internal/relay"
	"tinyboard/internal/render"
	"tinyboard/internal/rules"
)

func TestReadCommandsFeedsGestures(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	gestures := make(chan relay.Gesture, 16)
	readCommands(ctx, cancel, strings.NewReader("bogus\ndrag e2\ndrop e4\nend\nquit\ndrag d2\n"), &out, gestures)
	close(gestures)

	var kinds []relay.GestureKind
	for g := range gestures {
		kinds = append(kinds, g.Kind)
	}
	assert.Equal(t, []relay.GestureKind{
		relay.GestureDragStart, relay.GestureDragOver, relay.GestureDrop, relay.GestureDragEnd,
	}, kinds)
	assert.Contains(t, out.String(), "unknown command")
	assert.Error(t, ctx.Err(), "quit cancels the session")
}

func TestTerminalShow(t *testing.T) {
	var out bytes.Buffer
	v := render.New("").Render(rules.NewGame().CurrentBoard(), board.AsBlack)
	terminal{out: &out}.Show(v)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 9)
	assert.True(t, strings.HasPrefix(lines[0], "1 "))
}
