package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyName         = errors.New("item name is required")
	ErrInvalidPrice      = errors.New("item price must not be negative")
	ErrInvalidStock      = errors.New("stock quantity must not be negative")
	ErrInvalidCount      = errors.New("stock change must be positive")
	ErrInvalidKind       = errors.New("unknown item kind")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Kind discriminates item variants.
type Kind string

const (
	KindItem Kind = "ITEM"
	KindBook Kind = "BOOK"
)

// BookDetails carries the attributes specific to books.
type BookDetails struct {
	Author string
	Isbn   string
}

// Item is a sellable product. Book is the only variant with extra attributes;
// Book is set exactly when Kind is KindBook.
type Item struct {
	ID            int64
	Kind          Kind
	Name          string
	Price         int64
	StockQuantity int64
	Book          *BookDetails
}

// NewItem builds a plain item.
func NewItem(name string, price, stock int64) (*Item, error) {
	item := &Item{Kind: KindItem, Name: strings.TrimSpace(name), Price: price, StockQuantity: stock}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// NewBook builds a book item.
func NewBook(name string, price, stock int64, author, isbn string) (*Item, error) {
	item := &Item{
		Kind:          KindBook,
		Name:          strings.TrimSpace(name),
		Price:         price,
		StockQuantity: stock,
		Book:          &BookDetails{Author: strings.TrimSpace(author), Isbn: strings.TrimSpace(isbn)},
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate re-applies core invariants for persistence.
func (i *Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	if i.StockQuantity < 0 {
		return ErrInvalidStock
	}
	switch i.Kind {
	case KindItem:
		if i.Book != nil {
			return fmt.Errorf("%w: plain item with book details", ErrInvalidKind)
		}
	case KindBook:
		if i.Book == nil {
			i.Book = &BookDetails{}
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidKind, i.Kind)
	}
	return nil
}

// Change replaces the mutable catalogue attributes.
func (i *Item) Change(name string, price, stock int64) error {
	next := *i
	next.Name = strings.TrimSpace(name)
	next.Price = price
	next.StockQuantity = stock
	if err := next.Validate(); err != nil {
		return err
	}
	*i = next
	return nil
}

// AddStock returns count units to stock.
func (i *Item) AddStock(count int64) error {
	if count <= 0 {
		return ErrInvalidCount
	}
	i.StockQuantity += count
	return nil
}

// RemoveStock takes count units out of stock. Stock never goes negative.
func (i *Item) RemoveStock(count int64) error {
	if count <= 0 {
		return ErrInvalidCount
	}
	rest := i.StockQuantity - count
	if rest < 0 {
		return fmt.Errorf("%w: item %d has %d, requested %d", ErrInsufficientStock, i.ID, i.StockQuantity, count)
	}
	i.StockQuantity = rest
	return nil
}
