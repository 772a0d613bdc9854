package mapper

import (
	"strings"

	itemdomain "github.com/Apurer/go-gin-shop-api/internal/domains/items/domain"
)

// Item is the transport representation of a catalogue item. Author and Isbn
// are only meaningful for books.
type Item struct {
	ID            int64  `json:"id"`
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	StockQuantity int64  `json:"stockQuantity"`
	Author        string `json:"author,omitempty"`
	Isbn          string `json:"isbn,omitempty"`
}

// ToDomainItem builds a new domain item. An empty kind means a book, the
// only variant the shop sells through its API.
func ToDomainItem(item Item) (*itemdomain.Item, error) {
	kind := itemdomain.Kind(strings.ToUpper(strings.TrimSpace(item.Kind)))
	switch kind {
	case "", itemdomain.KindBook:
		return itemdomain.NewBook(item.Name, item.Price, item.StockQuantity, item.Author, item.Isbn)
	case itemdomain.KindItem:
		return itemdomain.NewItem(item.Name, item.Price, item.StockQuantity)
	default:
		return nil, itemdomain.ErrInvalidKind
	}
}

func FromDomainItem(item *itemdomain.Item) Item {
	if item == nil {
		return Item{}
	}
	out := Item{
		ID:            item.ID,
		Kind:          string(item.Kind),
		Name:          item.Name,
		Price:         item.Price,
		StockQuantity: item.StockQuantity,
	}
	if item.Book != nil {
		out.Author = item.Book.Author
		out.Isbn = item.Book.Isbn
	}
	return out
}

func FromDomainItems(items []*itemdomain.Item) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, FromDomainItem(item))
	}
	return result
}
