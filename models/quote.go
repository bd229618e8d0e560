package models

// Quote represents a single quote block scraped from a listing page
type Quote struct {
	Text   string
	Author string
	Tags   []string // In document order, empty when the block has no tags
}

// Equal reports whether two quotes carry the same text, author and tags
func (q Quote) Equal(other Quote) bool {
	if q.Text != other.Text || q.Author != other.Author || len(q.Tags) != len(other.Tags) {
		return false
	}
	for i := range q.Tags {
		if q.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}
