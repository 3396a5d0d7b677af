package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/angelmondragon/localarthub-backend/internal/cart"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const detailHref = "sproduct.html"

// cardNamespace seeds the deterministic card ids.
var cardNamespace = uuid.MustParse("6f1c2a3e-54d1-4d8c-9a57-2b7f0c3e9d41")

//go:embed pages/shop.html
var defaultShopPage []byte

// Card is one product card found in the catalog markup.
type Card struct {
	ID        string `json:"id"`
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	PriceText string `json:"price_text"`
	// Price is only meaningful when HasPrice is set; price text without
	// digits leaves the card outside every price comparison.
	Price       int    `json:"price"`
	HasPrice    bool   `json:"has_price"`
	Image       string `json:"image"`
	HasCartIcon bool   `json:"has_cart_icon"`
	DetailHref  string `json:"detail_href"`
}

// Page is the parsed catalog markup.
type Page struct {
	Cards []Card
	// HasMarker is set when the product listing section (#product1) exists.
	HasMarker bool
	// HasPageHeader gates installing the search and filter controls.
	HasPageHeader       bool
	HasResultsContainer bool

	byID map[string]int
}

// Lookup resolves the card a visitor clicked.
type Lookup interface {
	Card(id string) (Card, bool)
}

// Card returns the card with the given id.
func (p *Page) Card(id string) (Card, bool) {
	if p == nil {
		return Card{}, false
	}
	idx, ok := p.byID[id]
	if !ok {
		return Card{}, false
	}
	return p.Cards[idx], true
}

// DefaultPage parses the bundled shop page.
func DefaultPage() (*Page, error) {
	return Scan(bytes.NewReader(defaultShopPage))
}

// LoadPage parses the markup at path, or the bundled shop page when path is empty.
func LoadPage(path string) (*Page, error) {
	if path == "" {
		return DefaultPage()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog page: %w", err)
	}
	defer f.Close()
	return Scan(f)
}

// Scan parses catalog markup and collects its product cards in document order.
func Scan(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse catalog markup: %w", err)
	}

	page := &Page{byID: map[string]int{}}
	walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return true
		}
		switch attr(n, "id") {
		case "product1":
			page.HasMarker = true
		case "page-header":
			page.HasPageHeader = true
		}
		if hasClass(n, "pro-container") {
			page.HasResultsContainer = true
		}
		if hasClass(n, "pro") {
			page.addCard(n)
		}
		return true
	})
	return page, nil
}

func (p *Page) addCard(n *html.Node) {
	idx := len(p.Cards)
	name := textContent(findInDes(n, atom.H5))
	priceText := textContent(findInDes(n, atom.H4))
	price, hasPrice := cart.ParsePrice(priceText)

	card := Card{
		ID:          uuid.NewSHA1(cardNamespace, []byte(strconv.Itoa(idx)+":"+name)).String(),
		Index:       idx,
		Name:        name,
		Category:    textContent(findInDes(n, atom.Span)),
		PriceText:   priceText,
		Price:       price,
		HasPrice:    hasPrice,
		Image:       attr(findFirst(n, func(c *html.Node) bool { return c.DataAtom == atom.Img }), "src"),
		HasCartIcon: findFirst(n, func(c *html.Node) bool { return hasClass(c, "cart") }) != nil,
		DetailHref:  detailHref,
	}
	p.byID[card.ID] = idx
	p.Cards = append(p.Cards, card)
}

// findInDes finds the first element of the given kind that sits inside a
// .des block of the card.
func findInDes(card *html.Node, a atom.Atom) *html.Node {
	return findFirst(card, func(n *html.Node) bool {
		if n.DataAtom != a {
			return false
		}
		for p := n.Parent; p != nil && p != card; p = p.Parent {
			if hasClass(p, "des") {
				return true
			}
		}
		return false
	})
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	for c := root.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if found != nil {
				return false
			}
			if n.Type == html.ElementNode && match(n) {
				found = n
				return false
			}
			return true
		})
	}
	return found
}

// walk visits n and its descendants depth first; returning false skips the
// children of the current node.
func walk(n *html.Node, visit func(*html.Node) bool) {
	if !visit(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
