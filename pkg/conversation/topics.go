package conversation

import (
	"sort"
	"strings"
)

// topicKeywords categorizes messages into recurring life topics that feed
// the user profile and response personalization.
var topicKeywords = map[string][]string{
	"family":        {"mom", "mother", "dad", "father", "sister", "brother", "parent", "family", "grandma", "grandpa"},
	"work":          {"job", "boss", "career", "coworker", "office", "workplace", "workload", "fired", "promotion"},
	"school":        {"school", "class", "exam", "homework", "college", "university", "grade", "study"},
	"relationships": {"boyfriend", "girlfriend", "partner", "husband", "wife", "dating", "breakup", "divorce", "marriage"},
	"friendship":    {"friend", "bestie", "buddy", "friendship"},
	"health":        {"sick", "doctor", "hospital", "medication", "pain", "symptom", "illness"},
	"sleep":         {"sleep", "insomnia", "nightmare", "exhausted", "fatigue", "rest"},
	"finances":      {"money", "debt", "bills", "afford", "budget", "salary", "expensive"},
	"therapy":       {"therapist", "therapy", "counselor", "counseling", "psychologist", "psychiatrist"},
	"loneliness":    {"lonely", "alone", "isolated", "no friends"},
}

// ExtractTopics returns the distinct topics mentioned in a message.
func ExtractTopics(text string) []string {
	lowered := strings.ToLower(text)
	words := " " + strings.Join(strings.FieldsFunc(lowered, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '\''
	}), " ") + " "

	var topics []string
	for topic, keywords := range topicKeywords {
		for _, kw := range keywords {
			if strings.Contains(words, " "+kw+" ") {
				topics = append(topics, topic)
				break
			}
		}
	}
	sort.Strings(topics)
	return topics
}
