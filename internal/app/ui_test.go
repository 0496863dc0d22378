package app

import (
	"context"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nadercr7/Shamel/internal/chat"
	"github.com/Nadercr7/Shamel/internal/config"
	"github.com/Nadercr7/Shamel/internal/i18n"
	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/Nadercr7/Shamel/internal/prefs"
	"github.com/Nadercr7/Shamel/internal/quiz"
	"github.com/Nadercr7/Shamel/internal/speech"
	"github.com/Nadercr7/Shamel/internal/summarizer"
	tea "github.com/charmbracelet/bubbletea"
)

type echoConversation struct{}

func (echoConversation) SendMessageStream(ctx context.Context, text string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		yield("echo: "+text, nil)
	}
}

// newTestApp builds an App without devices or credentials
func newTestApp(t *testing.T, factory chat.Factory) *App {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	cfg := config.DefaultConfig()
	cfg.AudioTempDir = t.TempDir()

	a := &App{
		config: cfg,
		logger: logger,
		prefs:  prefs.NewStore(models.English, false, prefs.DefaultFontSize),
	}
	a.speaker = speech.NewOutputSession(nil, nil, logger)
	a.listener = speech.NewInputSession(nil, models.English.SpeechTag(), logger)
	a.chat = chat.New(factory, a.speaker, models.English, logger)
	a.summarizer = summarizer.NewService(summarizer.PDFExtractor{}, nil, logger)
	a.quiz = quiz.NewGame(quiz.Questions(models.English))
	return a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestModel_AccessibilityKeys(t *testing.T) {
	a := newTestApp(t, nil)
	m := NewModel(a, ViewHome)

	m.Update(key(tea.KeyF3))
	m.Update(key(tea.KeyF5))
	m.Update(key(tea.KeyF5))
	m.Update(key(tea.KeyF2))

	snap := a.prefs.Get()
	if !snap.HighContrast {
		t.Errorf("expected high contrast on")
	}
	if snap.FontSize != 20 {
		t.Errorf("expected font size 20, got %d", snap.FontSize)
	}
	if snap.Language != models.Arabic {
		t.Errorf("expected arabic, got %s", snap.Language)
	}
}

func TestModel_HomeNavigation(t *testing.T) {
	m := NewModel(newTestApp(t, nil), ViewHome)

	m.Update(runes("2"))
	if m.view != ViewQuiz {
		t.Fatalf("expected quiz view, got %v", m.view)
	}
	m.Update(key(tea.KeyEsc))
	m.Update(runes("3"))
	if m.view != ViewChat {
		t.Fatalf("expected chat view, got %v", m.view)
	}
}

func TestModel_QuizAnswerAndAdvance(t *testing.T) {
	a := newTestApp(t, nil)
	m := NewModel(a, ViewQuiz)

	m.Update(runes("2"))
	if a.quiz.Selected() != "Mars" || a.quiz.Score() != 1 {
		t.Fatalf("expected Mars scored, got %q score=%d", a.quiz.Selected(), a.quiz.Score())
	}
	if !strings.Contains(m.View(), "Correct!") {
		t.Errorf("expected correct feedback in view")
	}

	// a second answer is ignored while feedback shows
	m.Update(runes("1"))
	if a.quiz.Selected() != "Mars" {
		t.Fatalf("answer changed while feedback shown")
	}

	m.Update(runes("n"))
	if a.quiz.Index() != 1 || a.quiz.ShowFeedback() {
		t.Fatalf("expected second question, got index %d", a.quiz.Index())
	}

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))
	if a.quiz.Selected() != "Blue Whale" {
		t.Fatalf("expected cursor answer Blue Whale, got %q", a.quiz.Selected())
	}
}

func TestModel_LanguageChangeSwapsQuestions(t *testing.T) {
	a := newTestApp(t, nil)
	m := NewModel(a, ViewQuiz)

	m.Update(runes("2"))
	m.Update(runes("n"))

	snap := prefs.Snapshot{Language: models.Arabic, FontSize: prefs.DefaultFontSize}
	m.Update(prefsChangedMsg{snap: snap})

	if got, want := a.quiz.Current().Question, quiz.Questions(models.Arabic)[1].Question; got != want {
		t.Fatalf("expected arabic question %q, got %q", want, got)
	}
	if a.quiz.Score() != 1 {
		t.Errorf("score should survive a language switch")
	}
	if !m.theme.RTL {
		t.Errorf("expected right to left theme")
	}
	if !strings.Contains(m.View(), i18n.T(models.Arabic, "quizTitle", nil)) {
		t.Errorf("expected arabic title in view")
	}
}

func TestModel_NoticeIsModal(t *testing.T) {
	m := NewModel(newTestApp(t, nil), ViewHome)

	m.Update(speechErrorMsg{err: speech.ErrNotConfigured})
	if !strings.Contains(m.View(), i18n.T(models.English, "speechNotConfigured", nil)) {
		t.Fatalf("expected notice in view")
	}

	m.Update(runes("3"))
	if m.view != ViewHome {
		t.Fatalf("keys must not reach the view while a notice is shown")
	}

	m.Update(key(tea.KeyEnter))
	m.Update(runes("3"))
	if m.view != ViewChat {
		t.Fatalf("expected chat view after dismissing, got %v", m.view)
	}
}

func TestModel_SummarizerErrors(t *testing.T) {
	a := newTestApp(t, nil)
	m := NewModel(a, ViewSummarizer)

	_, cmd := m.Update(key(tea.KeyEnter))
	if !m.summary.loading || cmd == nil {
		t.Fatalf("expected a summarize command")
	}
	m.Update(cmd())
	if m.summary.err != i18n.T(models.English, "uploadError", nil) {
		t.Fatalf("expected upload error, got %q", m.summary.err)
	}

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("plain notes"), 0644); err != nil {
		t.Fatal(err)
	}
	m.Update(runes(path))
	_, cmd = m.Update(key(tea.KeyEnter))
	m.Update(cmd())
	if m.summary.err != i18n.T(models.English, "notPdfError", nil) {
		t.Fatalf("expected not pdf error, got %q", m.summary.err)
	}
	if m.summary.loading {
		t.Errorf("loading should clear when the summary settles")
	}
}

func TestModel_ChatSubmitAndTranscript(t *testing.T) {
	factory := func(ctx context.Context, lang models.Language) (chat.Conversation, error) {
		return echoConversation{}, nil
	}
	a := newTestApp(t, factory)
	m := NewModel(a, ViewChat)

	m.Update(transcriptMsg{text: "what is rain"})
	if m.chatInput.Value() != "what is rain" {
		t.Fatalf("transcript should fill the input, got %q", m.chatInput.Value())
	}

	m.Update(key(tea.KeyEnter))
	a.chat.Wait()
	if m.chatInput.Value() != "" {
		t.Errorf("input should clear after submit")
	}

	messages := a.chat.Messages()
	if len(messages) != 3 {
		t.Fatalf("expected greeting, question and reply, got %d", len(messages))
	}
	if messages[2].Text != "echo: what is rain" {
		t.Errorf("unexpected reply %q", messages[2].Text)
	}
	if !strings.Contains(m.View(), "echo: what is rain") {
		t.Errorf("expected reply in view")
	}
}

func TestModel_SpeakingStateIsReadFromSession(t *testing.T) {
	a := newTestApp(t, nil)
	a.speaker = speech.NewOutputSession(pendingSynth{}, nil, a.logger)
	m := NewModel(a, ViewSummarizer)
	m.summary.summary = "Plants make food from light."

	readAloud := i18n.T(models.English, "readAloud", nil)
	stopReading := i18n.T(models.English, "stopReading", nil)

	m.Update(key(tea.KeyCtrlR))
	if !a.speaker.Speaking() || !strings.Contains(m.View(), stopReading) {
		t.Fatalf("expected speaking after Ctrl+R")
	}

	m.Update(key(tea.KeyCtrlR))
	// transitions may arrive late and in any order; none of them carry state
	m.Update(speakingChangedMsg{})
	m.Update(speakingChangedMsg{})
	if a.speaker.Speaking() || !strings.Contains(m.View(), readAloud) {
		t.Fatalf("expected idle after the second Ctrl+R")
	}

	m.Update(key(tea.KeyCtrlR))
	if !a.speaker.Speaking() {
		t.Fatalf("Ctrl+R on an idle session should start reading")
	}
	a.speaker.Cancel()
}

func TestLineInput_BackspaceByRune(t *testing.T) {
	var in lineInput
	in.Insert("مرحبا")
	in.Backspace()
	if in.Value() != "مرحب" {
		t.Fatalf("expected one rune removed, got %q", in.Value())
	}
}

func TestWrapWidth(t *testing.T) {
	tests := []struct {
		term, font, want int
	}{
		{84, 16, 80},
		{84, 24, 53},
		{84, 12, 80},
		{10, 16, 20},
	}
	for _, tt := range tests {
		if got := WrapWidth(tt.term, tt.font); got != tt.want {
			t.Errorf("WrapWidth(%d, %d) = %d, want %d", tt.term, tt.font, got, tt.want)
		}
	}
}
