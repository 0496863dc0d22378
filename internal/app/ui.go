package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nadercr7/Shamel/internal/i18n"
	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/Nadercr7/Shamel/internal/prefs"
	"github.com/Nadercr7/Shamel/internal/quiz"
	"github.com/Nadercr7/Shamel/internal/speech"
	"github.com/Nadercr7/Shamel/internal/summarizer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// visibleMessages is the number of transcript entries rendered in the assistant view
const visibleMessages = 8

// Model represents the Bubbletea model
type Model struct {
	app    *App
	view   View
	snap   prefs.Snapshot
	theme  Theme
	width  int
	height int

	summary    summarizerState
	chatInput  lineInput
	quizCursor int
	notice     string
}

// NewModel creates a new Bubbletea model showing start
func NewModel(app *App, start View) *Model {
	snap := app.prefs.Get()
	return &Model{
		app:    app,
		view:   start,
		snap:   snap,
		theme:  NewTheme(snap, 80),
		width:  80,
		height: 24,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle(m.t("appTitle", nil))
}

func (m *Model) t(key string, r i18n.Replacements) string {
	return i18n.T(m.snap.Language, key, r)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme = NewTheme(m.snap, m.width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case prefsChangedMsg:
		if msg.snap.Language != m.snap.Language {
			m.app.quiz.SetQuestions(quiz.Questions(msg.snap.Language))
		}
		m.snap = msg.snap
		m.theme = NewTheme(m.snap, m.width)
		return m, tea.SetWindowTitle(m.t("appTitle", nil))

	case speechErrorMsg:
		if errors.Is(msg.err, speech.ErrNotConfigured) {
			m.notice = m.t("speechNotConfigured", nil)
		} else {
			m.notice = m.t("speechFailed", i18n.Replacements{"message": msg.err.Error()})
		}
		return m, nil

	case transcriptMsg:
		m.chatInput.Set(msg.text)
		return m, nil

	case summaryDoneMsg:
		m.summary.loading = false
		if msg.err != nil {
			m.summary.err = m.summaryError(msg.err)
		} else {
			m.summary.summary = msg.summary
		}
		return m, nil

	case chatChangedMsg, listeningChangedMsg, speakingChangedMsg:
		// state is read from the sessions on render
		return m, nil
	}

	return m, nil
}

// summaryError maps a summarizer failure to its user facing text
func (m *Model) summaryError(err error) string {
	switch {
	case errors.Is(err, summarizer.ErrNoDocument):
		return m.t("uploadError", nil)
	case errors.Is(err, summarizer.ErrNotPDF):
		return m.t("notPdfError", nil)
	case errors.Is(err, summarizer.ErrNoText):
		return m.t("extractError", nil)
	default:
		return m.t("summarizeError", i18n.Replacements{"message": err.Error()})
	}
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// the notification is modal
	if m.notice != "" {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.notice = ""
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyF2:
		m.app.prefs.ToggleLanguage()
		return m, nil
	case tea.KeyF3:
		m.app.prefs.ToggleHighContrast()
		return m, nil
	case tea.KeyF4:
		m.app.prefs.DecreaseFontSize()
		return m, nil
	case tea.KeyF5:
		m.app.prefs.IncreaseFontSize()
		return m, nil
	}

	switch m.view {
	case ViewHome:
		return m.handleHomeKeys(msg)
	case ViewSummarizer:
		return m.handleSummarizerKeys(msg)
	case ViewQuiz:
		return m.handleQuizKeys(msg)
	case ViewChat:
		return m.handleChatKeys(msg)
	default:
		return m, nil
	}
}

// handleHomeKeys handles the landing menu
func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.view = ViewSummarizer
	case "2":
		m.view = ViewQuiz
	case "3":
		m.view = ViewChat
	}
	return m, nil
}

// handleSummarizerKeys handles the path field and read aloud control
func (m *Model) handleSummarizerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.app.speaker.Cancel()
		m.view = ViewHome
		return m, nil
	case tea.KeyEnter:
		if m.summary.loading {
			return m, nil
		}
		m.summary.Reset()
		m.summary.loading = true
		return m, summarizeCmd(m.app, m.summary.path.Value())
	case tea.KeyCtrlR:
		if m.app.speaker.Speaking() {
			m.app.speaker.Cancel()
		} else if m.summary.summary != "" {
			m.app.speaker.Speak(m.summary.summary, m.snap.Language.SpeechTag())
		}
		return m, nil
	}
	editInput(&m.summary.path, msg)
	return m, nil
}

// handleQuizKeys handles answering and moving through the quiz
func (m *Model) handleQuizKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	game := m.app.quiz
	key := msg.String()

	switch key {
	case "esc":
		m.view = ViewHome
		return m, nil
	case "r":
		game.Restart()
		m.quizCursor = 0
		return m, nil
	}

	if game.Ended() {
		if key == "enter" {
			game.Restart()
			m.quizCursor = 0
		}
		return m, nil
	}

	switch key {
	case "1", "2", "3", "4":
		game.AnswerIndex(int(key[0] - '1'))
	case "up", "k":
		if m.quizCursor > 0 {
			m.quizCursor--
		}
	case "down", "j":
		if m.quizCursor < len(game.Current().Options)-1 {
			m.quizCursor++
		}
	case "enter":
		if game.ShowFeedback() {
			game.Next()
			m.quizCursor = 0
		} else {
			game.AnswerIndex(m.quizCursor)
		}
	case "n":
		if game.ShowFeedback() {
			game.Next()
			m.quizCursor = 0
		}
	}
	return m, nil
}

// handleChatKeys handles the assistant input and microphone
func (m *Model) handleChatKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.app.listener.Stop()
		m.app.speaker.Cancel()
		m.view = ViewHome
		return m, nil
	case tea.KeyEnter:
		if m.app.chat.Submit(m.chatInput.Value()) {
			m.chatInput.Reset()
			m.app.listener.Stop()
		}
		return m, nil
	case tea.KeyCtrlR:
		if m.app.listener.Listening() {
			m.app.listener.Stop()
		} else {
			m.app.listener.Start()
		}
		return m, nil
	case tea.KeyCtrlS:
		m.app.speaker.Cancel()
		return m, nil
	}
	editInput(&m.chatInput, msg)
	return m, nil
}

// editInput applies typing keys to a text field
func editInput(in *lineInput, msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		in.Insert(string(msg.Runes))
	case tea.KeySpace:
		in.Insert(" ")
	case tea.KeyBackspace:
		in.Backspace()
	}
}

// View renders the UI
func (m *Model) View() string {
	var body string
	switch m.view {
	case ViewSummarizer:
		body = m.renderSummarizer()
	case ViewQuiz:
		body = m.renderQuiz()
	case ViewChat:
		body = m.renderChat()
	default:
		body = m.renderHome()
	}

	if m.notice != "" {
		body = m.theme.Modal.Render(m.notice + "\n\n" + m.t("dismiss", nil))
	}

	return lipgloss.JoinVertical(m.theme.Align, m.renderHeader(), "", body)
}

// renderHeader renders the title, navigation and accessibility status
func (m *Model) renderHeader() string {
	title := m.theme.Title.Render(m.t("appTitle", nil))

	var nav []string
	for _, v := range []View{ViewHome, ViewSummarizer, ViewQuiz, ViewChat} {
		label := m.t(v.titleKey(), nil)
		if v == m.view {
			nav = append(nav, m.theme.Selected.Render("["+label+"]"))
		} else {
			nav = append(nav, " "+label+" ")
		}
	}

	contrast := "○"
	if m.snap.HighContrast {
		contrast = "●"
	}
	status := fmt.Sprintf("F2 %s | F3 %s %s | F4/F5 %s",
		m.t("toggleLanguage", nil),
		m.t("highContrast", nil), contrast,
		m.t("textSize", i18n.Replacements{"size": m.snap.FontSize}))

	return lipgloss.JoinVertical(
		m.theme.Align,
		title,
		strings.Join(nav, " "),
		m.theme.Status.Render(status),
	)
}

// renderHome renders the landing page
func (m *Model) renderHome() string {
	menu := strings.Join([]string{
		"1. " + m.t("exploreSummarizer", nil),
		"2. " + m.t("exploreQuiz", nil),
		"   " + m.t("quizGameDescription", nil),
		"3. " + m.t("openAssistant", nil),
	}, "\n")

	return lipgloss.JoinVertical(
		m.theme.Align,
		m.theme.Title.Render(m.t("welcomeTitle", nil)),
		m.theme.Body.Render(m.t("welcomeMessage", nil)),
		"",
		m.theme.Menu.Render(menu),
		m.theme.Help.Render(m.t("homeHelp", nil)),
	)
}

// renderSummarizer renders the PDF summarizer
func (m *Model) renderSummarizer() string {
	parts := []string{
		m.theme.Title.Render(m.t("pdfSummarizerTitle", nil)),
		m.theme.Body.Render(m.t("pdfSummarizerDescription", nil)),
		"",
		m.theme.Input.Render(m.t("selectPdf", nil) + ": " + m.summary.path.Value() + "█"),
	}

	switch {
	case m.summary.loading:
		parts = append(parts, m.theme.Status.Render(m.t("summarizing", nil)))
	case m.summary.err != "":
		parts = append(parts, m.theme.Error.Render(m.summary.err))
	case m.summary.summary != "":
		action := m.t("readAloud", nil)
		if m.app.speaker.Speaking() {
			action = m.t("stopReading", nil)
		}
		parts = append(parts,
			m.theme.Assistant.Render(m.summary.summary),
			m.theme.Selected.Render("Ctrl+R "+action),
		)
	default:
		parts = append(parts, m.theme.Status.Render(m.t("summaryPlaceholder", nil)))
	}

	parts = append(parts, m.theme.Help.Render(m.t("summarizerHelp", nil)))
	return lipgloss.JoinVertical(m.theme.Align, parts...)
}

// renderQuiz renders the current question or the final score
func (m *Model) renderQuiz() string {
	game := m.app.quiz
	title := m.theme.Title.Render(m.t("quizTitle", nil))

	if game.Ended() {
		return lipgloss.JoinVertical(
			m.theme.Align,
			title,
			m.theme.Correct.Render(m.t("quizComplete", nil)),
			m.theme.Body.Render(m.t("finalScore", i18n.Replacements{"score": game.Score(), "total": game.Total()})),
			"",
			m.theme.Selected.Render("Enter / r "+m.t("playAgain", nil)),
		)
	}

	q := game.Current()
	header := fmt.Sprintf("%s | %s",
		m.t("questionOf", i18n.Replacements{"current": game.Index() + 1, "total": game.Total()}),
		m.t("score", i18n.Replacements{"score": game.Score()}))

	var options []string
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case game.ShowFeedback() && opt == q.CorrectAnswer:
			options = append(options, m.theme.Correct.Render("✓ "+line))
		case game.ShowFeedback() && opt == game.Selected():
			options = append(options, m.theme.Error.Render("✗ "+line))
		case !game.ShowFeedback() && i == m.quizCursor:
			options = append(options, m.theme.Selected.Render("> "+line))
		default:
			options = append(options, "  "+line)
		}
	}

	parts := []string{
		title,
		m.theme.Status.Render(header),
		m.renderProgress(game.Progress()),
		"",
		m.theme.Body.Render(q.Question),
		"",
		m.theme.Menu.Render(strings.Join(options, "\n")),
	}

	if game.ShowFeedback() {
		verdict := m.theme.Error.Render(m.t("incorrect", nil))
		if game.Correct() {
			verdict = m.theme.Correct.Render(m.t("correct", nil))
		}
		next := m.t("nextQuestion", nil)
		if game.IsLast() {
			next = m.t("finishQuiz", nil)
		}
		parts = append(parts,
			"",
			verdict,
			m.theme.Body.Render(q.Explanation),
			m.theme.Selected.Render("n "+next),
		)
	}

	parts = append(parts, m.theme.Help.Render(m.t("quizHelp", nil)))
	return lipgloss.JoinVertical(m.theme.Align, parts...)
}

// renderProgress renders a bar filled to fraction of the wrap width
func (m *Model) renderProgress(fraction float64) string {
	width := m.theme.WrapWidth
	filled := int(fraction * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if m.theme.RTL {
		bar = strings.Repeat("░", width-filled) + strings.Repeat("█", filled)
	}
	return m.theme.Selected.Render(bar)
}

// renderChat renders the assistant transcript and input
func (m *Model) renderChat() string {
	chat := m.app.chat
	parts := []string{m.theme.Title.Render(m.t("chatTitle", nil))}

	if !chat.Available() {
		parts = append(parts, m.theme.Error.Render(m.t("chatUnavailable", nil)))
	}

	messages := chat.Messages()
	if len(messages) > visibleMessages {
		messages = messages[len(messages)-visibleMessages:]
	}
	for _, msg := range messages {
		switch msg.Role {
		case models.User:
			parts = append(parts, m.theme.UserMsg.Render(m.t("you", nil)+": "+msg.Text))
		default:
			text := msg.Text
			if text == "" {
				text = "…"
			}
			parts = append(parts, m.theme.Assistant.Render(text))
		}
	}

	if m.app.listener.Listening() {
		parts = append(parts, m.theme.Listening.Render("● "+m.t("chatListening", nil)))
	}
	if m.app.speaker.Speaking() {
		parts = append(parts, m.theme.Status.Render(m.t("speaking", nil)))
	}

	input := m.chatInput.Value() + "█"
	if m.chatInput.Value() == "" {
		input = m.theme.Status.Render(m.t("chatPlaceholder", nil))
	}
	parts = append(parts,
		m.theme.Input.Render(input),
		m.theme.Help.Render(m.t("chatHelp", nil)),
	)
	return lipgloss.JoinVertical(m.theme.Align, parts...)
}
