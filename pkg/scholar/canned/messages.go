package canned

// Placeholders understood by Fill.
const (
	VarMessage   = "message"
	VarReference = "reference"
)

var WelcomeMessages = []string{
	"Welcome to NIV Scholar. I'm here to help you explore the depths of biblical scripture with scholarly insight and historical context. What would you like to study today?",
	"Greetings, fellow student of scripture. I'm NIV Scholar, ready to guide you through the rich tapestry of biblical text, from historical context to original languages. What questions are on your heart?",
	"Welcome to our study session. I'm here to provide scholarly perspectives on biblical passages, historical backgrounds, and theological themes. How may I assist your exploration of God's word?",
}

var VerseIntroMessages = []string{
	"Let's explore {reference} together. This passage offers profound insights when we examine its historical and cultural context.",
	"Excellent choice. {reference} is a rich text for study. Let me share some scholarly perspectives on this passage.",
	"{reference} provides us with much to contemplate. The original language here reveals deeper layers of meaning.",
}

var LookupMessages = []string{
	"I'd be happy to explore {reference} with you. This passage offers rich insights when we consider its historical and cultural context.",
}

var SimulatedResponses = []string{
	"That's a fascinating question about {message}. From a scholarly perspective, we need to consider both the historical context and the original languages. The Hebrew word used here carries rich meaning that illuminates our understanding of this passage.",
	"I appreciate your thoughtful inquiry. This passage has been the subject of considerable scholarly discussion. The archaeological evidence from the period helps us understand the cultural background that informs this text.",
	"Your question touches on a crucial aspect of biblical interpretation. The Greek manuscript tradition offers some interesting variations that shed light on how the early church understood this passage.",
	"This is indeed a rich area of study. The cross-references throughout Scripture reveal a consistent pattern that helps us understand the theological significance of this passage.",
	"You've raised an important point for consideration. The historical context of the period, combined with insights from recent archaeological discoveries, provides valuable perspective on this passage.",
}

var FallbackMessages = []string{
	"That's an excellent question for our study together. Let me reflect on the biblical context and historical background to provide you with a thoughtful response.",
	"I appreciate your inquiry. This is a rich area of biblical study that deserves careful consideration from both historical and theological perspectives.",
	"Your question touches on important aspects of biblical scholarship. Let me gather the relevant historical and textual information to address this thoroughly.",
}
