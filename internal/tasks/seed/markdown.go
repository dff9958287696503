package seed

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"
	"todoapp/internal/tasks/data"
)

// ReadMarkdown turns every GitHub-style task list item into a task:
//
//	---
//	created: 2026-10-14T09:00:00Z
//	---
//	- [ ] Buy milk
//	- [x] Walk the dog
//
// All items share one creation time (frontmatter created, else fallback) so
// the derived view lists them in document order. Plain list items without a
// checkbox are ignored.
func ReadMarkdown(content []byte, fallback time.Time) ([]data.Task, error) {
	body, created, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}
	if created.IsZero() {
		created = fallback
	}

	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	doc := md.Parser().Parse(text.NewReader(body))

	var tasks []data.Task
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		box, ok := n.(*extast.TaskCheckBox)
		if !ok {
			return ast.WalkContinue, nil
		}

		itemText := strings.Join(strings.Fields(string(lineText(box.Parent(), body))), " ")
		if itemText == "" {
			return ast.WalkContinue, nil
		}
		status := data.StatusPending
		if box.IsChecked {
			status = data.StatusDone
		}
		tasks = append(tasks, data.Task{
			ID:     data.NewID(),
			Text:   itemText,
			Status: status,
			Time:   created,
		})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// lineText concatenates the text segments under n. Inline markup such as
// emphasis markers and backticks is dropped.
func lineText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte(' ')
			}
			continue
		}
		buf.Write(lineText(c, source))
	}
	return buf.Bytes()
}

// splitFrontmatter strips optional YAML frontmatter and returns its
// created timestamp.
func splitFrontmatter(content []byte) ([]byte, time.Time, error) {
	lines := bytes.Split(content, []byte("\n"))
	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return content, time.Time{}, nil
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return content, time.Time{}, nil
	}

	frontmatterBytes := bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	var fm struct {
		Created time.Time `yaml:"created"`
	}
	if err := yaml.Unmarshal(frontmatterBytes, &fm); err != nil {
		return nil, time.Time{}, fmt.Errorf("frontmatter: %w", err)
	}

	body := bytes.Join(lines[frontmatterEnd+1:], []byte("\n"))
	return body, fm.Created, nil
}
