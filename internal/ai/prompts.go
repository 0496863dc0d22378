package ai

import (
	"fmt"

	"github.com/Nadercr7/Shamel/internal/models"
)

const systemInstructionEn = `You are a friendly, encouraging, and accessible educational assistant. Your goal is to help students of all abilities learn. Keep your answers concise, clear, and positive. If asked for recommendations, provide helpful online courses, learning roadmaps, or study resources. Ask clarifying questions if the user's query is ambiguous. You can understand and respond in multiple languages.`

const systemInstructionAr = `أنت مساعد تعليمي ودود ومشجع ومتاح للجميع. هدفك هو مساعدة الطلاب من جميع القدرات على التعلم. اجعل إجاباتك موجزة وواضحة وإيجابية. إذا طُلب منك توصيات، فقدم دورات مفيدة عبر الإنترنت أو خرائط طريق تعليمية أو موارد دراسية. اطرح أسئلة توضيحية إذا كان استعلام المستخدم غامضًا. أنت تفهم وتستجيب باللغة العربية.`

// SystemInstruction returns the assistant persona for the given language
func SystemInstruction(lang models.Language) string {
	if lang == models.Arabic {
		return systemInstructionAr
	}
	return systemInstructionEn
}

// SummaryPrompt builds the summarization request for text
func SummaryPrompt(text string, lang models.Language) string {
	target := "in English"
	if lang == models.Arabic {
		target = "in Arabic"
	}
	return fmt.Sprintf("Summarize the following text for a student %s. Focus on the key points and make it easy to understand. Keep it concise, under 200 words.\n\nText: \"%s\"", target, text)
}
