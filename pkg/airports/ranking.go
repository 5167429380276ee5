package airports

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Ranked is one row of the busiest-airports page, in page order.
type Ranked struct {
	IATA string
	Name string
}

// ParseRanking extracts ranked airports from a saved copy of the
// busiest-airports page. Each table row carries the airport name in
// its second cell and the IATA code in its third; rows whose third
// cell is not a bare three-letter code are skipped. Order and
// duplicates follow the page, deduplicated on first appearance.
func ParseRanking(r io.Reader) ([]Ranked, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing ranking page: %w", err)
	}

	var ranked []Ranked
	seen := make(map[string]bool)
	for _, row := range findAll(doc, "tr") {
		cells := findAll(row, "td")
		if len(cells) < 3 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(textOf(cells[2])))
		if !isIATA(code) || seen[code] {
			continue
		}
		seen[code] = true
		ranked = append(ranked, Ranked{
			IATA: code,
			Name: cleanName(strings.TrimSpace(textOf(cells[1]))),
		})
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("ranking page contained no airport rows")
	}
	return ranked, nil
}

func isIATA(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := range 3 {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

func findAll(node *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			found = append(found, n)
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return found
}

func textOf(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return b.String()
}
