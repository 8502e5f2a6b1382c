package server

// DemoReplies are served when the provider reports an exhausted quota.
var DemoReplies = []string{
	"I'm currently running in demo mode due to API quota limits. This is a sample response from Jadoo! In full mode, I would provide personalized AI-powered responses to help you with various tasks.",
	"Demo mode active! I'm Jadoo, your AI assistant. While I can't access the full AI model right now due to quota limits, I'm designed to help you with conversations, questions, and tasks when fully operational.",
	"This is a demo response from Jadoo. The OpenAI API quota has been exceeded, but normally I would provide intelligent, contextual responses based on your personality settings and conversation history.",
	"Jadoo here in demo mode! I'd love to help you with real AI-powered responses, but we've hit the API quota limit. Please check your OpenAI billing to restore full functionality.",
}

func (s *Server) demoReply() string {
	i := s.opts.PickDemo(len(DemoReplies))
	if i < 0 || i >= len(DemoReplies) {
		i = 0
	}
	return DemoReplies[i]
}
