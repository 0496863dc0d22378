package models

import "time"

// Language represents one of the supported interface languages
type Language string

const (
	English Language = "en"
	Arabic  Language = "ar"
)

// ParseLanguage maps a user supplied code to a Language, defaulting to English
func ParseLanguage(code string) Language {
	switch code {
	case "ar", "ar-SA", "arabic", "Arabic":
		return Arabic
	default:
		return English
	}
}

func (l Language) String() string {
	switch l {
	case Arabic:
		return "العربية"
	default:
		return "English"
	}
}

// Direction returns the text direction used to render the language
func (l Language) Direction() Direction {
	if l == Arabic {
		return RightToLeft
	}
	return LeftToRight
}

// SpeechTag returns the BCP 47 tag handed to speech recognition and synthesis
func (l Language) SpeechTag() string {
	if l == Arabic {
		return "ar-SA"
	}
	return "en-US"
}

// Toggle returns the other supported language
func (l Language) Toggle() Language {
	if l == Arabic {
		return English
	}
	return Arabic
}

// Direction is the horizontal writing direction of a language
type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// Role identifies the author of a conversation message
type Role int

const (
	User Role = iota
	Assistant
)

func (r Role) String() string {
	switch r {
	case User:
		return "user"
	case Assistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// ConversationMessage is a single finalized entry in the assistant transcript
type ConversationMessage struct {
	Role Role
	Text string
}

// QuizQuestion is one multiple choice question of the quiz game
type QuizQuestion struct {
	Question      string
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// AudioData represents audio data captured from the microphone
type AudioData struct {
	Data       []float32
	SampleRate int
	Channels   int
	Duration   time.Duration
}
