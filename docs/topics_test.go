package docs

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// parse returns the markdown AST of a topic's content.
func parse(t *testing.T, content string) ast.Node {
	t.Helper()
	md := goldmark.New()
	return md.Parser().Parse(text.NewReader([]byte(content)))
}

func TestEveryTopicIsWellFormed(t *testing.T) {
	topics, err := AllTopics()
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) == 0 {
		t.Fatal("no documentation topics embedded")
	}

	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}

			source := []byte(content)
			doc := parse(t, content)

			// the first block must be a level-1 heading naming the topic
			first := doc.FirstChild()
			heading, ok := first.(*ast.Heading)
			if !ok {
				t.Fatalf("topic does not start with a heading, got %T", first)
			}
			if heading.Level != 1 {
				t.Errorf("topic starts with an h%d, want h1", heading.Level)
			}

			// every fenced code block must declare a language
			err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				if fenced, ok := n.(*ast.FencedCodeBlock); ok {
					if fenced.Language(source) == nil {
						t.Error("fenced code block without a language tag")
					}
				}
				return ast.WalkContinue, nil
			})
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestGetTopicWildcardConcatenatesAll(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}

	topics, err := AllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(all, content) {
			t.Errorf("wildcard content is missing topic %q", topic)
		}
	}
}

func TestGetTopicUnknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("unknown topic accepted")
	}
}
