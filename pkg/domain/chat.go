package domain

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// ChatMessage is a single line of the rescue conversation.
type ChatMessage struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// ChatStage tracks which ABC field the conversation is collecting.
type ChatStage string

const (
	ChatAskEvent       ChatStage = "A"
	ChatAskBelief      ChatStage = "B"
	ChatAskConsequence ChatStage = "C"
	ChatDone           ChatStage = "DONE"
)

// Next returns the stage following s. ChatDone is a fixed point.
func (s ChatStage) Next() ChatStage {
	switch s {
	case ChatAskEvent:
		return ChatAskBelief
	case ChatAskBelief:
		return ChatAskConsequence
	default:
		return ChatDone
	}
}
