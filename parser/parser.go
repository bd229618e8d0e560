package parser

import (
	"bytes"
	"errors"
	"fmt"

	"quotes-scraper/models"

	"github.com/PuerkitoBio/goquery"
)

// CSS selectors for the quote listing markup
const (
	QuoteSelector  = ".quote"
	TextSelector   = ".text"
	AuthorSelector = ".author"
	TagSelector    = ".tag"
	NextSelector   = "li.next"
)

var (
	// ErrMissingText is returned when a quote block has no text element
	ErrMissingText = errors.New("quote block has no text element")
	// ErrMissingAuthor is returned when a quote block has no author element
	ErrMissingAuthor = errors.New("quote block has no author element")
)

// Page holds everything extracted from one listing page
type Page struct {
	Quotes  []models.Quote
	HasNext bool // true when the page links to a following page
}

// Parser extracts quote data from HTML
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts the quotes and the next-page indicator from page content
func (p *Parser) Parse(content []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	quotes, err := p.extractQuotes(doc)
	if err != nil {
		return nil, err
	}

	return &Page{
		Quotes:  quotes,
		HasNext: doc.Find(NextSelector).Length() > 0,
	}, nil
}

// ExtractQuotes returns every quote on the page, or an empty slice when the
// page has no quote blocks
func (p *Parser) ExtractQuotes(content []byte) ([]models.Quote, error) {
	page, err := p.Parse(content)
	if err != nil {
		return nil, err
	}
	return page.Quotes, nil
}

func (p *Parser) extractQuotes(doc *goquery.Document) ([]models.Quote, error) {
	quotes := []models.Quote{}

	var extractErr error
	doc.Find(QuoteSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		quote, err := p.extractQuote(s)
		if err != nil {
			extractErr = fmt.Errorf("quote block %d: %w", i, err)
			return false
		}
		quotes = append(quotes, quote)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	return quotes, nil
}

// extractQuote extracts a single quote from a quote block
func (p *Parser) extractQuote(s *goquery.Selection) (models.Quote, error) {
	text := s.Find(TextSelector).First()
	if text.Length() == 0 {
		return models.Quote{}, ErrMissingText
	}

	author := s.Find(AuthorSelector).First()
	if author.Length() == 0 {
		return models.Quote{}, ErrMissingAuthor
	}

	tags := []string{}
	s.Find(TagSelector).Each(func(_ int, tag *goquery.Selection) {
		tags = append(tags, tag.Text())
	})

	return models.Quote{
		Text:   text.Text(),
		Author: author.Text(),
		Tags:   tags,
	}, nil
}
