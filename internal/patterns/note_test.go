package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNote_GroceryList(t *testing.T) {
	n, ok := ParseNote("add apples, bananas, and milk to my grocery list")
	require.True(t, ok)
	assert.Equal(t, "Grocery List", n.Title)
	assert.Equal(t, "- apples\n- bananas\n- milk", n.Content)
}

func TestParseNote_Templates(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		title   string
		content string
	}{
		{
			name:    "list for title and add items in it",
			text:    "create a list for groceries and add items eggs and bread in it",
			title:   "Groceries List",
			content: "- eggs\n- bread",
		},
		{
			name:    "list for title and add",
			text:    "make a list for packing and add socks, charger",
			title:   "Packing List",
			content: "- socks\n- charger",
		},
		{
			name:    "list title with items",
			text:    "create a list chores with dishes and laundry please",
			title:   "Chores List",
			content: "- dishes\n- laundry",
		},
		{
			name:    "title list of items",
			text:    "make a shopping list of soap, shampoo.",
			title:   "Shopping List",
			content: "- soap\n- shampoo",
		},
		{
			name:    "my list with trailing please",
			text:    "add eggs to my shopping list please",
			title:   "Shopping List",
			content: "- eggs",
		},
		{
			name:    "my list with trailing for me",
			text:    "add milk to my grocery list for me",
			title:   "Grocery List",
			content: "- milk",
		},
		{
			name:    "note down",
			text:    "note down call the plumber",
			title:   "Note",
			content: "- call the plumber",
		},
		{
			name:    "bare add falls back to note",
			text:    "add pick up dry cleaning for me",
			title:   "Note",
			content: "- pick up dry cleaning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := ParseNote(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.content, n.Content)
		})
	}
}

func TestParseNote_EmptyItems(t *testing.T) {
	if _, ok := ParseNote("add , ,"); ok {
		t.Error("expected no match for a list without items")
	}
	if _, ok := ParseNote("write something"); ok {
		t.Error("expected no match without a note phrase")
	}
}

func TestSplitItems(t *testing.T) {
	got := SplitItems("items bread, butter and jam, to the list")
	assert.Equal(t, []string{"bread", "butter", "jam"}, got)
}

func TestParseShowNote(t *testing.T) {
	tests := []struct {
		text  string
		title string
		ok    bool
	}{
		{"show me my grocery list", "Grocery List", true},
		{"display the packing list", "Packing List", true},
		{"view note", "Note", true},
		{"show my note", "Note", true},
		{"show me cats on youtube", "", false},
		{"open my grocery list", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseShowNote(tt.text)
		if ok != tt.ok {
			t.Errorf("%q: expected ok=%v, got %v", tt.text, tt.ok, ok)
			continue
		}
		if got.Title != tt.title {
			t.Errorf("%q: expected title %q, got %q", tt.text, tt.title, got.Title)
		}
	}
}
