package game

// State of the game.
type State int

const (
	StartScreen State = iota
	Loading
	Ready
	Playing
	Victory
	Defeat
	// Complete is the terminal state, after the last level is won.
	Complete
)

var stateNames = [...]string{
	StartScreen: "START_SCREEN",
	Loading:     "LOADING",
	Ready:       "READY",
	Playing:     "PLAYING",
	Victory:     "VICTORY",
	Defeat:      "DEFEAT",
	Complete:    "COMPLETE",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// Prompt is the button the player is currently offered.
type Prompt int

const (
	PromptNone Prompt = iota
	PromptContinue
	PromptStart
	PromptRetry
)

// Label is the button text.
func (p Prompt) Label() string {
	switch p {
	case PromptContinue:
		return ">>CONTINUE>>"
	case PromptStart:
		return ">>START GAME>>"
	case PromptRetry:
		return ">>RETRY LEVEL>>"
	}
	return ""
}

func (p Prompt) String() string {
	switch p {
	case PromptContinue:
		return "continue"
	case PromptStart:
		return "start"
	case PromptRetry:
		return "retry"
	}
	return "none"
}
