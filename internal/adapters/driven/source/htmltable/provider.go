package htmltable

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/custodia-labs/exwatch-cli/internal/core/domain"
	"github.com/custodia-labs/exwatch-cli/internal/core/ports/driven"
)

// Column positions of the three fields of interest on the published
// table. The page also carries category and sub-category columns that
// the watcher does not track.
const (
	subjectColumn  = 0
	decisionColumn = 4
	dateColumn     = 5
)

// Ensure Provider implements the interface.
var _ driven.SourceProvider = (*Provider)(nil)

// Provider fetches and parses the exclusion table page.
type Provider struct {
	url    string
	client *http.Client
}

// NewProvider creates a provider for the given page URL.
func NewProvider(url string, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// FetchRows retrieves the page and extracts one RawRow per table body
// row. Rows with missing cells are returned with empty fields and left
// for the orchestrator to validate and skip. A page without any table
// rows fails with domain.ErrTableNotFound: the page structure has
// changed and continuing would wrongly report every record as deleted.
func (p *Provider) FetchRows(ctx context.Context) ([]domain.RawRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", p.url, resp.Status)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.url, err)
	}

	rows := extractRows(doc)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrTableNotFound, p.url)
	}

	return rows, nil
}

// extractRows walks the document for table body rows and maps their
// cells onto RawRow fields.
func extractRows(doc *html.Node) []domain.RawRow {
	var rows []domain.RawRow

	for _, tbody := range findAll(doc, "tbody") {
		for _, tr := range findAll(tbody, "tr") {
			cells := findAll(tr, "td")
			if len(cells) == 0 {
				continue
			}
			rows = append(rows, domain.RawRow{
				Subject:       cellText(cells, subjectColumn),
				Decision:      cellText(cells, decisionColumn),
				EffectiveDate: cellText(cells, dateColumn),
			})
		}
	}

	return rows
}

// findAll returns all descendant elements with the given tag, in
// document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			found = append(found, node)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return found
}

func cellText(cells []*html.Node, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(textContent(cells[idx]))
}

// textContent concatenates all text nodes beneath n, collapsing the
// whitespace that markup nesting introduces.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
