package templates

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyboard/internal/board"
	"tinyboard/internal/render"
	"tinyboard/internal/rules"
)

func boardHTML(t *testing.T, role board.Role) string {
	t.Helper()
	v := render.New("").Render(rules.NewGame().CurrentBoard(), role)
	var sb strings.Builder
	require.NoError(t, WriteBoardHTML(&sb, v))
	return sb.String()
}

func TestBoardHTMLWhite(t *testing.T) {
	html := boardHTML(t, board.AsWhite)
	assert.True(t, strings.HasPrefix(html, `<div class="chessboard">`))
	assert.Equal(t, 64, strings.Count(html, `<div class="square `))
	assert.Equal(t, 32, strings.Count(html, `<div class="square light"`))
	assert.Contains(t, html, `data-row="6" data-col="4"`)
	assert.Contains(t, html, `<img class="piece-image" src="/images/wp.png" draggable="true">`)
	assert.Contains(t, html, `<img class="piece-image" src="/images/bp.png" draggable="false">`)
	assert.Contains(t, html, `<div class="piece white" draggable="true">♜</div>`)
	assert.Contains(t, html, `<div class="piece black">♚</div>`)
}

func TestBoardHTMLBlackIsFlipped(t *testing.T) {
	html := boardHTML(t, board.AsBlack)
	assert.True(t, strings.HasPrefix(html, `<div class="chessboard flipped">`))
	assert.Contains(t, html, `<div class="piece black" draggable="true">♚</div>`)
}

func TestBoardHTMLSpectatorHasNoDraggable(t *testing.T) {
	html := boardHTML(t, board.Spectator)
	assert.NotContains(t, html, `draggable="true"`)
}

func TestWriteGameHTML(t *testing.T) {
	v := render.New("").Render(rules.NewGame().CurrentBoard(), board.Spectator)
	w := httptest.NewRecorder()
	WriteGameHTML(w, "abc", v)

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `data-socket="/ws/abc"`)
	assert.Contains(t, body, "new WebSocket(")
	assert.Contains(t, body, `<div class="chessboard">`)
}
