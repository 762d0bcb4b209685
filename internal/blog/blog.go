package blog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"insurancefinder/internal/logger"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"
)

const excerptLen = 160

// FAQ is a question/answer pair rendered on the post and in its JSON-LD.
type FAQ struct {
	Q string `yaml:"q" json:"q"`
	A string `yaml:"a" json:"a"`
}

// Post represents a blog article.
type Post struct {
	Slug        string    `yaml:"slug"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Date        time.Time `yaml:"date"`
	Keywords    []string  `yaml:"keywords"`
	FAQs        []FAQ     `yaml:"faqs"`
	HTMLContent string    `yaml:"-"`
	Excerpt     string    `yaml:"-"`
	Headings    []string  `yaml:"-"`
}

var (
	posts []Post
	mu    sync.RWMutex
)

// LoadAll reads all .md files from dir, parses YAML frontmatter + markdown body,
// and stores them sorted by date descending. Files that fail to parse are
// logged and skipped.
func LoadAll(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	md := goldmark.New()
	var loaded []Post
	seen := make(map[string]bool)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warn("blog: read failed", map[string]interface{}{"file": e.Name(), "error": err.Error()})
			continue
		}

		p, err := parsePost(data, md)
		if err != nil {
			logger.Warn("blog: parse failed", map[string]interface{}{"file": e.Name(), "error": err.Error()})
			continue
		}
		if seen[p.Slug] {
			logger.Warn("blog: duplicate slug", map[string]interface{}{"file": e.Name(), "slug": p.Slug})
			continue
		}
		seen[p.Slug] = true
		loaded = append(loaded, p)
	}

	sort.Slice(loaded, func(i, j int) bool {
		if !loaded[i].Date.Equal(loaded[j].Date) {
			return loaded[i].Date.After(loaded[j].Date)
		}
		return loaded[i].Slug < loaded[j].Slug
	})

	mu.Lock()
	posts = loaded
	mu.Unlock()

	logger.Info("blog: posts loaded", map[string]interface{}{"count": len(loaded), "dir": dir})
	return nil
}

func parsePost(data []byte, md goldmark.Markdown) (Post, error) {
	content := string(data)

	// Strip leading BOM if present
	content = strings.TrimPrefix(content, "\xef\xbb\xbf")

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 || strings.TrimSpace(parts[0]) != "" {
		return Post{}, fmt.Errorf("invalid frontmatter")
	}

	var p Post
	if err := yaml.Unmarshal([]byte(parts[1]), &p); err != nil {
		return Post{}, err
	}
	if p.Slug == "" || p.Title == "" {
		return Post{}, fmt.Errorf("missing slug or title")
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(strings.TrimSpace(parts[2])), &buf); err != nil {
		return Post{}, err
	}
	p.HTMLContent = buf.String()

	p.Headings, p.Excerpt = outline(p.HTMLContent)
	if p.Excerpt == "" {
		p.Excerpt = p.Description
	}
	return p, nil
}

// outline walks the rendered HTML and returns the h2 texts and a plain-text
// excerpt taken from the first paragraph.
func outline(rendered string) ([]string, string) {
	doc, err := html.Parse(strings.NewReader(rendered))
	if err != nil {
		return nil, ""
	}

	var headings []string
	var excerpt string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H2:
				headings = append(headings, strings.TrimSpace(textOf(n)))
				return
			case atom.P:
				if excerpt == "" {
					excerpt = truncate(strings.Join(strings.Fields(textOf(n)), " "), excerptLen)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return headings, excerpt
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	cut := string(r[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// GetAll returns all posts sorted by date descending.
func GetAll() []Post {
	mu.RLock()
	defer mu.RUnlock()
	result := make([]Post, len(posts))
	copy(result, posts)
	return result
}

// GetBySlug returns a post by its slug, or nil if not found.
func GetBySlug(slug string) *Post {
	mu.RLock()
	defer mu.RUnlock()
	for i := range posts {
		if posts[i].Slug == slug {
			p := posts[i]
			return &p
		}
	}
	return nil
}
