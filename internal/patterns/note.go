package patterns

import (
	"regexp"
	"strings"

	"jarvis/internal/intent"
)

// DefaultNoteTitle is the title used when an utterance names no list.
const DefaultNoteTitle = "Note"

type noteTemplate struct {
	re *regexp.Regexp
	// title and items are capture group numbers; title 0 means DefaultNoteTitle.
	title, items int
}

// noteTemplates are tried top to bottom; the first match wins.
var noteTemplates = []noteTemplate{
	// create a list for groceries and add items eggs and milk in it
	{regexp.MustCompile(`(?i)^(?:create|make)\s+(?:a\s+)?(?:new\s+)?list\s+for\s+(.+?)\s+and\s+add\s+(?:items?\s+)?(.+?)\s+(?:in|to)\s+it$`), 1, 2},
	// make a list for groceries and add eggs and milk
	{regexp.MustCompile(`(?i)^(?:create|make)\s+(?:a\s+)?(?:new\s+)?list\s+for\s+(.+?)\s+and\s+add\s+(.+)$`), 1, 2},
	// create a list groceries with eggs, milk
	{regexp.MustCompile(`(?i)^(?:create|make)\s+(?:a\s+)?(?:new\s+)?list\s+(?:called\s+|named\s+)?(.+?)\s+(?:with|having|containing)\s+(.+)$`), 1, 2},
	// add apples, bananas, and milk to my grocery list please
	{regexp.MustCompile(`(?i)^(?:add|put)\s+(.+?)\s+(?:to|in|on|into)\s+my\s+(.+?)\s+list(?:\s+(?:please|for me|in it|to it))*$`), 2, 1},
	// make a grocery list of apples and milk
	{regexp.MustCompile(`(?i)^(?:make|create|add)\s+(?:a\s+|an\s+|my\s+)?(.+?)\s+list(?:\s+of|:)?\s+(.+)$`), 1, 2},
	// note down apples and milk
	{regexp.MustCompile(`(?i)^(?:note\s+down|add)\s+(.+)$`), 0, 1},
}

var (
	itemPrefixRe  = regexp.MustCompile(`(?i)^items?\s+`)
	itemFillerRe  = regexp.MustCompile(`(?i)(?:\s+(?:in it|to it|for me|please|to the list|for my list))+$`)
	itemSplitRe   = regexp.MustCompile(`(?i),\s*and\s+|,\s*|\s+and\s+`)
	listSuffixRe  = regexp.MustCompile(`(?i)\s+list$`)
	showNoteRe    = regexp.MustCompile(`(?i)^(?:show|view|display)\s+(?:me\s+)?(?:my\s+|the\s+)?(.+?)(?:\s+list|\s+note)?$`)
	onYoutubeTail = regexp.MustCompile(`(?i)\bon\s+youtube$`)
)

// ParseNote extracts a note or list creation request.
func ParseNote(text string) (intent.Note, bool) {
	text = Clean(text)

	for _, tpl := range noteTemplates {
		m := tpl.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		title := DefaultNoteTitle
		if tpl.title != 0 {
			title = listTitle(m[tpl.title])
			if title == "" {
				continue
			}
		}
		items := SplitItems(m[tpl.items])
		if len(items) == 0 {
			return intent.Note{}, false
		}
		return intent.Note{Title: title, Content: Bullets(items)}, true
	}
	return intent.Note{}, false
}

// SplitItems cleans filler words from raw and splits it into list items.
func SplitItems(raw string) []string {
	raw = strings.TrimSpace(raw)
	raw = itemPrefixRe.ReplaceAllString(raw, "")
	raw = strings.TrimSpace(itemFillerRe.ReplaceAllString(raw, ""))
	if raw == "" {
		return nil
	}

	var items []string
	for _, part := range itemSplitRe.Split(raw, -1) {
		part = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(part), ","))
		if part != "" {
			items = append(items, part)
		}
	}
	return items
}

// Bullets renders items one per line with a leading "- ".
func Bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// listTitle turns a spoken list name into a stored title: "grocery" -> "Grocery List".
func listTitle(name string) string {
	name = strings.TrimSpace(listSuffixRe.ReplaceAllString(strings.TrimSpace(name), ""))
	if name == "" {
		return ""
	}
	return Capitalize(name) + " List"
}

// ParseShowNote extracts the title of a note to display.
func ParseShowNote(text string) (intent.ShowNote, bool) {
	text = strings.ToLower(Clean(text))
	if onYoutubeTail.MatchString(text) {
		return intent.ShowNote{}, false
	}
	m := showNoteRe.FindStringSubmatch(text)
	if m == nil {
		return intent.ShowNote{}, false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return intent.ShowNote{}, false
	}
	if name == "note" {
		return intent.ShowNote{Title: DefaultNoteTitle}, true
	}
	return intent.ShowNote{Title: Capitalize(name) + " List"}, true
}
