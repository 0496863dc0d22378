package app

// View identifies a screen of the hub
type View int

const (
	ViewHome View = iota
	ViewSummarizer
	ViewQuiz
	ViewChat
)

// titleKey returns the translation key of the view's navigation label
func (v View) titleKey() string {
	switch v {
	case ViewSummarizer:
		return "summarizer"
	case ViewQuiz:
		return "quiz"
	case ViewChat:
		return "assistant"
	default:
		return "home"
	}
}

// lineInput is a single line text field edited rune by rune
type lineInput struct {
	value []rune
}

// Insert appends s at the end of the field
func (in *lineInput) Insert(s string) {
	in.value = append(in.value, []rune(s)...)
}

// Backspace removes the last rune
func (in *lineInput) Backspace() {
	if len(in.value) > 0 {
		in.value = in.value[:len(in.value)-1]
	}
}

// Set replaces the content of the field
func (in *lineInput) Set(s string) {
	in.value = []rune(s)
}

// Reset clears the field
func (in *lineInput) Reset() {
	in.value = nil
}

// Value returns the content of the field
func (in *lineInput) Value() string {
	return string(in.value)
}

// summarizerState holds the PDF summarizer form
type summarizerState struct {
	path    lineInput
	summary string
	loading bool
	err     string
}

// Reset clears the result and error, keeping the path
func (s *summarizerState) Reset() {
	s.summary = ""
	s.err = ""
}
