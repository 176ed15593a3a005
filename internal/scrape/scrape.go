// Package scrape extracts resource documentation from the HTML reference page.
//
// The page lists resources after a top-level "Resources" heading. Each
// resource is an h2 heading followed, in order, by a table whose body rows
// document its fields:
//
//	<h1>Resources</h1>
//	<h2>Story</h2>
//	<table>
//	  <tbody>
//	    <tr>
//	      <td><strong>epic</strong> <span>Epic or null</span></td>
//	      <td>The epic the story belongs to.</td>
//	    </tr>
//	  </tbody>
//	</table>
//
// Headings and tables are paired by position; surplus on either side is
// ignored.
package scrape

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"schema-generator/internal/resource"
)

// ResourcesHeading is the text of the h1 that opens the resource section.
const ResourcesHeading = "Resources"

// Scraper reads the HTML reference page into a resource set.
type Scraper struct {
	log logr.Logger
}

// New creates a Scraper that logs to log.
func New(log logr.Logger) *Scraper {
	return &Scraper{log: log}
}

// Parse scrapes r with logging disabled.
func Parse(r io.Reader) (*resource.Set, error) {
	return New(logr.Discard()).Parse(r)
}

// Parse reads the page from r. A page without a Resources heading yields an
// empty set.
func (s *Scraper) Parse(r io.Reader) (*resource.Set, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	set := resource.NewSet()

	heading := findHeading(doc)
	if heading == nil {
		s.log.Info("no resources heading found", "heading", ResourcesHeading)

		return set, nil
	}

	var headings, tables []*html.Node

	for n := heading.NextSibling; n != nil; n = n.NextSibling {
		switch {
		case isElement(n, atom.H2):
			headings = append(headings, n)
		case isElement(n, atom.Table):
			tables = append(tables, n)
		}
	}

	for i := range min(len(headings), len(tables)) {
		name := Fold(textOf(headings[i]))

		res, err := set.Add(name)
		if err != nil {
			return nil, err
		}

		if err := s.extract(res, tables[i]); err != nil {
			return nil, err
		}

		s.log.V(1).Info("resource scraped", "resource", name, "fields", len(res.Fields))
	}

	return set, nil
}

type fieldCell struct {
	name    string
	rawType string
}

// extract pairs the table's field cells with its description cells.
func (s *Scraper) extract(res *resource.Resource, table *html.Node) error {
	var (
		fields       []fieldCell
		descriptions []string
	)

	for _, tbody := range children(table, atom.Tbody) {
		for _, tr := range children(tbody, atom.Tr) {
			for _, td := range children(tr, atom.Td) {
				strong := firstChild(td, atom.Strong)
				if strong == nil {
					descriptions = append(descriptions, Fold(textOf(td)))

					continue
				}

				cell := fieldCell{name: strings.TrimSpace(textOf(strong))}
				if span := firstChild(td, atom.Span); span != nil {
					cell.rawType = Fold(textOf(span))
				}

				fields = append(fields, cell)
			}
		}
	}

	if len(fields) != len(descriptions) {
		s.log.V(1).Info("field and description counts differ",
			"resource", res.Name, "fields", len(fields), "descriptions", len(descriptions))
	}

	for i := range min(len(fields), len(descriptions)) {
		if err := res.AddField(fields[i].name, fields[i].rawType, descriptions[i]); err != nil {
			return err
		}
	}

	return nil
}

func findHeading(n *html.Node) *html.Node {
	if isElement(n, atom.H1) && strings.TrimSpace(textOf(n)) == ResourcesHeading {
		return n
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findHeading(c); found != nil {
			return found
		}
	}

	return nil
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}

func children(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, a) {
			out = append(out, c)
		}
	}

	return out
}

func firstChild(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, a) {
			return c
		}
	}

	return nil
}

// textOf concatenates all text below n, like the XPath string() function.
func textOf(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)

	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return sb.String()
}
