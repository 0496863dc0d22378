// Package i18n holds the static English and Arabic translation tables.
package i18n

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Nadercr7/Shamel/internal/models"
)

// Replacements maps placeholder names to the values interpolated into a translation
type Replacements map[string]any

// T looks up key for lang. Keys missing from the language table fall back to English and
// unknown keys are returned unchanged. Each {name} placeholder is replaced once.
func T(lang models.Language, key string, replacements Replacements) string {
	translation, ok := tables[lang][key]
	if !ok || translation == "" {
		translation, ok = tables[models.English][key]
		if !ok {
			translation = key
		}
	}
	return interpolate(translation, replacements)
}

// interpolate replaces the first occurrence of each {name} in one pass over template,
// so substituted values are never scanned for placeholders
func interpolate(template string, replacements Replacements) string {
	type span struct {
		start, end int
		value      string
	}
	var spans []span
	for name, value := range replacements {
		placeholder := "{" + name + "}"
		if i := strings.Index(template, placeholder); i >= 0 {
			spans = append(spans, span{start: i, end: i + len(placeholder), value: fmt.Sprint(value)})
		}
	}
	if len(spans) == 0 {
		return template
	}
	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })

	var b strings.Builder
	last := 0
	for _, sp := range spans {
		b.WriteString(template[last:sp.start])
		b.WriteString(sp.value)
		last = sp.end
	}
	b.WriteString(template[last:])
	return b.String()
}

// Translator binds T to a fixed language
type Translator struct {
	Lang models.Language
}

// T translates key in the translator's language
func (tr Translator) T(key string, replacements Replacements) string {
	return T(tr.Lang, key, replacements)
}

var tables = map[models.Language]map[string]string{
	models.English: english,
	models.Arabic:  arabic,
}

var english = map[string]string{
	// Navigation
	"home":       "Home",
	"summarizer": "Summarizer",
	"quiz":       "Quiz",
	"assistant":  "Assistant",
	// Header
	"appTitle":       "Inclusive AI Learning Hub",
	"toggleLanguage": "Switch to Arabic",
	"highContrast":   "High contrast",
	"textSize":       "Text size: {size}",
	// Home
	"welcomeTitle":        "Welcome to the Inclusive AI Learning Hub",
	"welcomeMessage":      "Your accessible gateway to knowledge. Use the menu to explore our tools, including a PDF summarizer and an interactive quiz game. Our AI assistant is always one key away.",
	"exploreSummarizer":   "Explore Summarizer",
	"exploreQuiz":         "Explore Quiz",
	"openAssistant":       "Talk to the Assistant",
	"quizGameDescription": "Test your knowledge with fun and interactive quizzes on various subjects.",
	"homeHelp":            "1-3 open a tool · F2 language · F3 contrast · F4/F5 text size · q quit",
	// PDF Summarizer
	"pdfSummarizerTitle":       "PDF Summarizer & Reader",
	"pdfSummarizerDescription": "Enter the path of a PDF document to get a concise summary. Then, have it read aloud to you.",
	"selectPdf":                "PDF path",
	"summarize":                "Summarize",
	"summarizing":              "Summarizing...",
	"summaryPlaceholder":       "Summary will appear here...",
	"readAloud":                "Read Aloud",
	"stopReading":              "Stop Reading",
	"uploadError":              "Please upload a PDF file first.",
	"notPdfError":              "Please choose a PDF file.",
	"extractError":             "Could not extract text from the PDF. It might be an image-based PDF.",
	"summarizeError":           "Failed to summarize: {message}",
	"summarizerHelp":           "Enter summarize · Ctrl+R read aloud / stop · Esc back",
	// Quiz Game
	"quizTitle":    "Quiz Challenge",
	"questionOf":   "Question {current} of {total}",
	"score":        "Score: {score}",
	"correct":      "Correct!",
	"incorrect":    "Incorrect",
	"playAgain":    "Play Again",
	"quizComplete": "Quiz Complete!",
	"finalScore":   "Your final score is: {score} / {total}",
	"nextQuestion": "Next Question",
	"finishQuiz":   "Finish Quiz",
	"quizHelp":     "1-4 or ↑/↓ + Enter answer · n next · r restart · Esc back",
	// Chatbot
	"chatTitle":       "AI Learning Assistant",
	"chatGreeting":    "Hello! How can I help you learn today?",
	"chatPlaceholder": "Ask me anything...",
	"chatListening":   "Listening...",
	"chatError":       "Sorry, I'm having trouble connecting right now.",
	"chatUnavailable": "The assistant is not configured.",
	"chatHelp":        "Enter send · Ctrl+R microphone · Ctrl+S stop speech · Esc back",
	"you":             "You",
	// Speech
	"speaking":            "Speaking...",
	"speechFailed":        "Text-to-speech failed: {message}",
	"speechNotConfigured": "Speech synthesis is not configured. Speech synthesis is disabled.",
	"dismiss":             "Press Enter to dismiss",
}

var arabic = map[string]string{
	// Navigation
	"home":       "الرئيسية",
	"summarizer": "الملخص",
	"quiz":       "الاختبار",
	"assistant":  "المساعد",
	// Header
	"appTitle":       "مركز التعلم الشامل بالذكاء الاصطناعي",
	"toggleLanguage": "Switch to English",
	"highContrast":   "تباين عالٍ",
	"textSize":       "حجم النص: {size}",
	// Home
	"welcomeTitle":        "أهلاً بكم في مركز التعلم الشامل بالذكاء الاصطناعي",
	"welcomeMessage":      "بوابتك الميسرة للمعرفة. استخدم القائمة لاستكشاف أدواتنا، بما في ذلك ملخص PDF ولعبة اختبار تفاعلية. مساعدنا الذكي موجود دائمًا على بعد مفتاح واحد.",
	"exploreSummarizer":   "استكشف الملخص",
	"exploreQuiz":         "استكشف الاختبار",
	"openAssistant":       "تحدث إلى المساعد",
	"quizGameDescription": "اختبر معلوماتك مع اختبارات ممتعة وتفاعلية في مواضيع مختلفة.",
	// PDF Summarizer
	"pdfSummarizerTitle":       "ملخص وقارئ PDF",
	"pdfSummarizerDescription": "أدخل مسار مستند PDF للحصول على ملخص موجز. ثم، اجعله يقرأه لك بصوت عالٍ.",
	"selectPdf":                "مسار ملف PDF",
	"summarize":                "تلخيص",
	"summarizing":              "جاري التلخيص...",
	"summaryPlaceholder":       "سيظهر الملخص هنا...",
	"readAloud":                "اقرأ بصوت عالٍ",
	"stopReading":              "إيقاف القراءة",
	"uploadError":              "يرجى تحميل ملف PDF أولاً.",
	"notPdfError":              "يرجى اختيار ملف PDF.",
	"extractError":             "تعذر استخراج النص من ملف PDF. قد يكون الملف عبارة عن صور.",
	"summarizeError":           "فشل التلخيص: {message}",
	// Quiz Game
	"quizTitle":    "تحدي الاختبار",
	"questionOf":   "سؤال {current} من {total}",
	"score":        "النتيجة: {score}",
	"correct":      "صحيح!",
	"incorrect":    "غير صحيح",
	"playAgain":    "العب مرة أخرى",
	"quizComplete": "اكتمل الاختبار!",
	"finalScore":   "نتيجتك النهائية هي: {score} / {total}",
	"nextQuestion": "السؤال التالي",
	"finishQuiz":   "إنهاء الاختبار",
	// Chatbot
	"chatTitle":       "مساعد التعلم بالذكاء الاصطناعي",
	"chatGreeting":    "أهلاً بك! كيف يمكنني مساعدتك في التعلم اليوم؟",
	"chatPlaceholder": "اسألني أي شيء...",
	"chatListening":   "يستمع...",
	"chatError":       "عذراً، أواجه مشكلة في الاتصال الآن.",
	"you":             "أنت",
	// Speech
	"speaking":     "يتحدث...",
	"speechFailed": "فشل تحويل النص إلى كلام: {message}",
}
