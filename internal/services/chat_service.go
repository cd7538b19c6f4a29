package services

import "strings"

// ChatServiceProvider defines the interface for the maintenance chat
// responder.
type ChatServiceProvider interface {
	Reply(message string) string
}

// ChatService answers free-text maintenance questions by matching known
// symptom keywords against canned advice.
type ChatService struct{}

// NewChatService creates a new ChatService.
func NewChatService() *ChatService {
	return &ChatService{}
}

const chatFooter = "\n\nFor more detailed information, please contact the administrator."

// Reply returns the canned advice for a message. Only a truly empty
// message yields the prompt to describe the issue; whitespace counts as
// content and falls through to the default advice.
func (s *ChatService) Reply(message string) string {
	msg := strings.ToLower(message)
	if msg == "" {
		return "Please describe the issue."
	}

	var reply string
	switch {
	case containsAny(msg, "noise", "squeak", "squeaking", "knock"):
		reply = "Sounds like a suspension or engine mount issue. Check wheel bearings and mounts. If uncertain, schedule a service."
	case containsAny(msg, "overheat", "temperature", "hot"):
		reply = "Engine temperature high — stop driving and check coolant level. Visit service center if it continues."
	case containsAny(msg, "battery", "start", "won't start", "not start"):
		reply = "Battery or starter issue likely. Try jump-starting or check battery health. Schedule service if problem persists."
	case containsAny(msg, "oil", "leak", "smoke"):
		reply = "Possible oil leak or serious issue. Avoid driving long distances and schedule immediate service."
	default:
		reply = "Could be minor — try basic checks (tyre pressure, fluid levels). If symptoms persist, schedule service."
	}

	return reply + chatFooter
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
