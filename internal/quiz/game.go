// Package quiz implements the multiple choice quiz game.
package quiz

import "github.com/Nadercr7/Shamel/internal/models"

// Game tracks progress through a question set. It is not safe for concurrent use; the
// UI event loop owns it.
type Game struct {
	questions    []models.QuizQuestion
	index        int
	selected     string
	showFeedback bool
	score        int
	ended        bool
}

// NewGame starts a game over questions
func NewGame(questions []models.QuizQuestion) *Game {
	return &Game{questions: questions}
}

// SetQuestions swaps the question set, keeping the current position
func (g *Game) SetQuestions(questions []models.QuizQuestion) {
	g.questions = questions
	if g.index >= len(questions) {
		g.index = 0
	}
}

// Current returns the question being asked
func (g *Game) Current() models.QuizQuestion {
	if len(g.questions) == 0 {
		return models.QuizQuestion{}
	}
	return g.questions[g.index]
}

// Answer records the chosen option. It returns false when feedback is already shown,
// the game has ended, or option is empty.
func (g *Game) Answer(option string) bool {
	if g.showFeedback || g.ended || option == "" {
		return false
	}
	g.selected = option
	g.showFeedback = true
	if option == g.Current().CorrectAnswer {
		g.score++
	}
	return true
}

// AnswerIndex answers with the option at i
func (g *Game) AnswerIndex(i int) bool {
	options := g.Current().Options
	if i < 0 || i >= len(options) {
		return false
	}
	return g.Answer(options[i])
}

// Next moves to the following question, or ends the game after the last one
func (g *Game) Next() {
	if !g.showFeedback || g.ended {
		return
	}
	if g.index < len(g.questions)-1 {
		g.index++
		g.selected = ""
		g.showFeedback = false
		return
	}
	g.ended = true
}

// Restart resets the game to the first question
func (g *Game) Restart() {
	g.index = 0
	g.selected = ""
	g.showFeedback = false
	g.score = 0
	g.ended = false
}

// Index returns the zero based position of the current question
func (g *Game) Index() int { return g.index }

// Total returns the number of questions
func (g *Game) Total() int { return len(g.questions) }

// Score returns the number of correct answers so far
func (g *Game) Score() int { return g.score }

// Selected returns the chosen option while feedback is shown
func (g *Game) Selected() string { return g.selected }

// ShowFeedback reports whether the current question has been answered
func (g *Game) ShowFeedback() bool { return g.showFeedback }

// Ended reports whether the last question has been passed
func (g *Game) Ended() bool { return g.ended }

// IsLast reports whether the current question is the final one
func (g *Game) IsLast() bool { return g.index >= len(g.questions)-1 }

// Correct reports whether the recorded answer is right
func (g *Game) Correct() bool {
	return g.showFeedback && g.selected == g.Current().CorrectAnswer
}

// Progress returns the fraction of questions already passed, in [0,1)
func (g *Game) Progress() float64 {
	if len(g.questions) == 0 {
		return 0
	}
	return float64(g.index) / float64(len(g.questions))
}
