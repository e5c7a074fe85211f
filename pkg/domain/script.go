package domain

// Script holds the static dialogue lines of a rescue flow.
// Hosts supply localized scripts; DefaultScript is a neutral English fallback.
type Script struct {
	IntroFunny     string
	IntroNormal    string
	AskBeliefFunny string
	AskBelief      string
	AskConsequence string
	Transition     string
	LensesLimit    string
}

// DefaultScript returns the built-in English script.
func DefaultScript() Script {
	return Script{
		IntroFunny:     "Uh-oh, something rattled you. What just happened?",
		IntroNormal:    "I'm here. Tell me what just happened.",
		AskBeliefFunny: "Got it. And what is the voice in your head saying about it?",
		AskBelief:      "What thought went through your mind when it happened?",
		AskConsequence: "How does that thought make you feel right now?",
		Transition:     "Thank you. Let's look at this from a few different angles.",
		LensesLimit:    "That's all the perspectives for now. Pick the one that feels closest.",
	}
}

// Intro returns the opening line for the given tone.
func (s Script) Intro(t Tone) string {
	if t == ToneFunny {
		return s.IntroFunny
	}
	return s.IntroNormal
}

// LineFor returns the scripted bot line that asks for the given chat stage.
func (s Script) LineFor(stage ChatStage, t Tone) string {
	switch stage {
	case ChatAskBelief:
		if t == ToneFunny {
			return s.AskBeliefFunny
		}
		return s.AskBelief
	case ChatAskConsequence:
		return s.AskConsequence
	case ChatDone:
		return s.Transition
	}
	return ""
}
