package relay

import (
	"tinyboard/internal/board"
	"tinyboard/internal/logging"
	"tinyboard/internal/protocol"
	"tinyboard/internal/rules"
)

// Apply handles one server event. Role events only touch State; board
// events go through the engine. Engine and decode failures are returned
// as-is with no render requested, leaving the engine wherever it ended up.
func Apply(s State, engine rules.Engine, env protocol.Envelope) (State, Command, error) {
	switch env.Event {
	case protocol.EventPlayerRole:
		var code string
		if err := env.Decode(&code); err != nil {
			return s, Command{}, err
		}
		s.Role = board.RoleFor(code)
		return s, Command{Render: true}, nil

	case protocol.EventSpectatorRole:
		s.Role = board.Spectator
		return s, Command{Render: true}, nil

	case protocol.EventBoardState:
		var fen string
		if err := env.Decode(&fen); err != nil {
			return s, Command{}, err
		}
		if err := engine.LoadPosition(fen); err != nil {
			return s, Command{}, err
		}
		return s, Command{Render: true}, nil

	case protocol.EventMove:
		var m protocol.Move
		if err := env.Decode(&m); err != nil {
			return s, Command{}, err
		}
		if err := engine.ApplyMove(m); err != nil {
			return s, Command{}, err
		}
		return s, Command{Render: true}, nil

	case protocol.EventInvalidMove:
		logging.Debugf("server rejected move: %s", env.Data)
		return s, Command{}, nil

	default:
		logging.Debugf("ignoring event %q", env.Event)
		return s, Command{}, nil
	}
}
