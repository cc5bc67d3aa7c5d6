package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/notarium/internal/classes"
)

func TestPage_Articles(t *testing.T) {
	p := &Page{Elements: []Element{
		Heading{Level: 2, Text: "A"},
		&Panel{Entries: []Entry{
			ArticleLink{Article: 3},
			InlineHeading{Level: 3, Text: "B"},
			ArticleLink{Article: 1, Index: "1.1"},
		}},
		Paragraph{Text: "x"},
		&Panel{Entries: []Entry{
			ArticleLink{Article: 3, Index: "2"},
			ArticleLink{Article: 0},
		}},
	}}

	assert.Equal(t, []classes.ArticleID{3, 1, 0}, p.Articles())
}

func TestPage_ArticlesEmpty(t *testing.T) {
	assert.Empty(t, (&Page{}).Articles())
}
