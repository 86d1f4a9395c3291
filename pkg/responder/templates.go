package responder

// Supportive reply templates keyed by detected emotion. Several variants per
// emotion so consecutive replies do not repeat.
var emotionTemplates = map[string][]string{
	"sadness": {
		"I'm sorry to hear you're feeling down. Would you like to talk about what's bringing you down?",
		"It's okay to feel sad sometimes. Is there something specific that's making you feel this way?",
		"I understand that sadness can be difficult to carry. What's on your mind right now?",
	},
	"anger": {
		"I can tell you're feeling angry, and that's a completely valid emotion. Would you like to share what's triggering these feelings?",
		"Anger is a natural response to many situations. What's making you feel this way right now?",
		"I understand you're feeling angry. Would you like to talk more about what's behind it?",
	},
	"anxiety": {
		"Feeling anxious can be really challenging. Is there something specific that's causing you worry?",
		"I hear that you're feeling anxious. Would it help to talk through what's making you feel this way?",
		"Anxiety can be overwhelming sometimes. What's weighing on you today?",
	},
	"fear": {
		"It sounds like something is frightening you. Would you like to talk about what's making you feel unsafe?",
		"Fear is a difficult feeling to sit with. What do you think is behind it right now?",
		"I hear that you're scared. You don't have to face this alone. What's happening?",
	},
	"joy": {
		"I'm glad to hear you're feeling good! What's been bringing you joy lately?",
		"That's wonderful to hear. What's contributing to this feeling today?",
		"It's great that you're feeling positive. What's been going well for you?",
	},
	"confusion": {
		"It sounds like you're feeling uncertain. Would it help to break down what's happening step by step?",
		"Being confused can be uncomfortable. What part feels most unclear right now?",
		"I understand you're feeling confused. Let's try to untangle this together. What's on your mind?",
	},
	"disappointment": {
		"I'm sorry to hear you're feeling disappointed. Would you like to talk about what didn't go the way you hoped?",
		"Disappointment can be really tough to deal with. What happened that led to these feelings?",
		"I understand you're feeling let down. What were you hoping would happen differently?",
	},
	"guilt": {
		"Guilt can be a heavy burden to carry. Would you like to talk about what's making you feel this way?",
		"I hear that you're feeling guilty. That's a difficult emotion to process. What happened?",
		"Feeling guilty is common, but it can be painful. What's triggering this feeling for you?",
	},
	"surprise": {
		"That sounds unexpected. How are you feeling about it now that it's happened?",
		"Surprises can throw us off balance. Would you like to talk through what happened?",
	},
}

// Fallbacks by sentiment label when no emotion stands out.
var sentimentTemplates = map[string][]string{
	"positive": {
		"It sounds like things are going well for you. What's been the highlight lately?",
		"I'm glad to hear that. Would you like to share more about what's been good?",
		"That's encouraging to hear. What's been helping things feel this way?",
	},
	"negative": {
		"I hear that things feel hard right now. Would you like to tell me more about what's going on?",
		"That sounds really difficult. I'm here to listen. What's been the hardest part?",
		"Thank you for sharing that with me. What's been weighing on you the most?",
	},
	"neutral": {
		"Thanks for sharing that. How are you feeling about everything right now?",
		"I'm listening. Is there anything in particular you'd like to talk about today?",
		"Tell me more about what's been on your mind lately.",
	},
}

// Follow-up questions keyed by profile topic, appended to keep the
// conversation anchored to what the user keeps returning to.
var topicFollowUps = map[string][]string{
	"family":        {"How have things been with your family lately?"},
	"work":          {"How has work been treating you this week?"},
	"school":        {"How are things going with school?"},
	"relationships": {"How are things in your relationship right now?"},
	"friendship":    {"Have you been able to connect with your friends recently?"},
	"health":        {"How have you been feeling physically?"},
	"sleep":         {"How has your sleep been lately?"},
	"finances":      {"How are you managing the financial pressure?"},
	"therapy":       {"How are your sessions going?"},
	"loneliness":    {"Have you had any chances to connect with people lately?"},
}

// Acknowledgments prepended when the user repeats the same concern.
var repetitionPrefixes = []string{
	"I notice this keeps coming up for you, and that tells me it matters. ",
	"It seems like this feeling is really important to you. ",
	"I hear that you're still sitting with this. ",
}

const lowConcernTemplate = "I notice you seem to be having a difficult time. Remember that it's okay to feel this way, and sharing your feelings is a positive step. Is there something specific that's troubling you that you'd like to discuss more?"

const moderateConcernTemplate = "I'm concerned about what you're sharing. These feelings can be overwhelming, but please know you don't have to face them alone. Many people find it helpful to talk to someone. Would it be helpful to explore some support options or coping strategies together?"

// safeFallbackTemplate is the reply of last resort when validation fails
// twice. Deliberately generic and always safe to send.
const safeFallbackTemplate = "I want to make sure you're getting the support you need. How are you feeling right now, and is there something specific I can help you with?"
