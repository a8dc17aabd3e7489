package patterns

import (
	"regexp"

	"jarvis/internal/intent"
)

const saying = `(?:saying|that\s+says|and\s+say|to\s+say)`

var (
	callRe = regexp.MustCompile(`(?i)^(?:call|dial|phone|ring)\s+(?:up\s+)?(.+)$`)

	smsRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^send\s+(?:an?\s+)?(?:text|message|sms|msg)(?:\s+message)?\s+to\s+(.+?)\s+` + saying + `\s+(.+)$`),
		regexp.MustCompile(`(?i)^(?:text|sms|message)\s+(\S+)\s+(?:` + saying + `\s+)?(.+)$`),
	}

	whatsappWordRe  = regexp.MustCompile(`(?i)\bwhats\s?app\b`)
	whatsappTailRe  = regexp.MustCompile(`(?i)\s+(?:on|via|over|using)\s+whats\s?app$`)
	whatsappMessage = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^send\s+(?:an?\s+)?(?:whats\s?app\s+message|whats\s?app|message|msg|text)\s+to\s+(.+?)\s+` + saying + `\s+(.+)$`),
		regexp.MustCompile(`(?i)^whats\s?app\s+(?:message\s+)?(?:to\s+)?(.+?)\s+` + saying + `\s+(.+)$`),
		regexp.MustCompile(`(?i)^message\s+(.+?)\s+(?:on|via|over|using)\s+whats\s?app\s+(?:` + saying + `\s+)?(.+)$`),
		regexp.MustCompile(`(?i)^send\s+(\S+)\s+(.+?)\s+(?:on|via|over|using)\s+whats\s?app$`),
		regexp.MustCompile(`(?i)^whats\s?app\s+(\S+)\s+(.+)$`),
	}
	// send hi to mom on whatsapp: the body comes first.
	whatsappBodyFirstRe = regexp.MustCompile(`(?i)^(?:send|whats\s?app)\s+(.+?)\s+to\s+(\S+)(?:\s+(?:on|via|over|using)\s+whats\s?app)?$`)
	leadingToRe         = regexp.MustCompile(`(?i)^to\s`)

	// Video patterns are checked first: every video phrasing also contains "call".
	whatsappVideoCall = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:make\s+a\s+|start\s+a\s+|place\s+a\s+)?video\s+call\s+(?:to\s+|with\s+)?(.+?)\s+(?:on|via|over|using)\s+whats\s?app$`),
		regexp.MustCompile(`(?i)^(?:make\s+a\s+|start\s+a\s+|place\s+a\s+)?whats\s?app\s+video\s+call\s+(?:to\s+|with\s+)?(.+)$`),
		regexp.MustCompile(`(?i)^video\s+call\s+(.+)$`),
	}
	whatsappAudioCall = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:make\s+an?\s+|start\s+an?\s+|place\s+an?\s+)?(?:audio\s+|voice\s+)?call\s+(?:to\s+|with\s+)?(.+?)\s+(?:on|via|over|using)\s+whats\s?app$`),
		regexp.MustCompile(`(?i)^(?:make\s+a\s+|start\s+a\s+|place\s+a\s+)?whats\s?app\s+(?:audio\s+|voice\s+)?call\s+(?:to\s+|with\s+)?(.+)$`),
	}

	emailRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:please\s+)?(?:generate|write|compose|draft)\s+(?:an?\s+)?e-?mail\s+to\s+(.+?)\s+(?:about|subject|regarding)\s*:?\s+(.+?)\s+(?:with\s+)?context\s*:?\s+(.+)$`),
		regexp.MustCompile(`(?i)^e-?mail\s+(.+?)\s+subject\s*:?\s+(.+?)\s+context\s*:?\s+(.+)$`),
	}

	youtubeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:search|find|look\s+up)\s+(?:for\s+)?(.+?)\s+on\s+youtube$`),
		regexp.MustCompile(`(?i)^(?:search|find)\s+youtube\s+for\s+(.+)$`),
		regexp.MustCompile(`(?i)^(?:play|watch|show\s+me)\s+(.+?)\s+on\s+youtube$`),
		regexp.MustCompile(`(?i)^youtube\s+search\s+(?:for\s+)?(.+)$`),
		regexp.MustCompile(`(?i)^youtube\s+(.+)$`),
	}
)

// ParseCall extracts the target of a plain phone call.
func ParseCall(text string) (intent.Call, bool) {
	m := callRe.FindStringSubmatch(Clean(text))
	if m == nil || m[1] == "" {
		return intent.Call{}, false
	}
	return intent.Call{Target: collapse(m[1])}, true
}

// ParseSMS extracts a text message recipient and body.
func ParseSMS(text string) (intent.SMS, bool) {
	m := firstSubmatch(smsRes, Clean(text))
	if m == nil || m[1] == "" || m[2] == "" {
		return intent.SMS{}, false
	}
	return intent.SMS{Target: m[1], Body: m[2]}, true
}

// ParseWhatsAppMessage extracts a WhatsApp message. The word "whatsapp" must
// appear so plain SMS phrasings fall through to ParseSMS.
func ParseWhatsAppMessage(text string) (intent.WhatsAppMessage, bool) {
	text = Clean(text)
	if !whatsappWordRe.MatchString(text) {
		return intent.WhatsAppMessage{}, false
	}
	m := firstSubmatch(whatsappMessage, text)
	if m == nil {
		return intent.WhatsAppMessage{}, false
	}
	target := whatsappTailRe.ReplaceAllString(m[1], "")
	body := whatsappTailRe.ReplaceAllString(m[2], "")
	if leadingToRe.MatchString(body) {
		// A single-word target followed by "to" is the body, not a contact.
		r := whatsappBodyFirstRe.FindStringSubmatch(text)
		if r == nil {
			return intent.WhatsAppMessage{}, false
		}
		target, body = r[2], r[1]
	}
	if target == "" || body == "" {
		return intent.WhatsAppMessage{}, false
	}
	return intent.WhatsAppMessage{Target: target, Body: body}, true
}

// ParseWhatsAppVideoCall extracts the target of a WhatsApp video call.
func ParseWhatsAppVideoCall(text string) (intent.WhatsAppCall, bool) {
	return parseWhatsAppCall(whatsappVideoCall, text, true)
}

// ParseWhatsAppAudioCall extracts the target of a WhatsApp voice call.
func ParseWhatsAppAudioCall(text string) (intent.WhatsAppCall, bool) {
	return parseWhatsAppCall(whatsappAudioCall, text, false)
}

func parseWhatsAppCall(res []*regexp.Regexp, text string, video bool) (intent.WhatsAppCall, bool) {
	m := firstSubmatch(res, Clean(text))
	if m == nil {
		return intent.WhatsAppCall{}, false
	}
	target := whatsappTailRe.ReplaceAllString(m[1], "")
	if target == "" {
		return intent.WhatsAppCall{}, false
	}
	return intent.WhatsAppCall{Target: target, Video: video}, true
}

// ParseEmailDraft requires a recipient, a subject and a context.
func ParseEmailDraft(text string) (intent.EmailDraft, bool) {
	m := firstSubmatch(emailRes, Clean(text))
	if m == nil || m[1] == "" || m[2] == "" || m[3] == "" {
		return intent.EmailDraft{}, false
	}
	return intent.EmailDraft{Recipient: m[1], Subject: m[2], Context: m[3]}, true
}

// ParseYoutubeSearch extracts a YouTube search query.
func ParseYoutubeSearch(text string) (intent.YoutubeSearch, bool) {
	m := firstSubmatch(youtubeRes, Clean(text))
	if m == nil || m[1] == "" {
		return intent.YoutubeSearch{}, false
	}
	return intent.YoutubeSearch{Query: m[1]}, true
}
