package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook_Validates(t *testing.T) {
	book, err := NewBook(" JPA1 BOOK ", 10000, 100, "kim", "isbn-1")
	require.NoError(t, err)
	assert.Equal(t, KindBook, book.Kind)
	assert.Equal(t, "JPA1 BOOK", book.Name)
	require.NotNil(t, book.Book)
	assert.Equal(t, "kim", book.Book.Author)

	_, err = NewBook("", 1, 1, "", "")
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewItem("pen", -1, 1)
	require.ErrorIs(t, err, ErrInvalidPrice)
	_, err = NewItem("pen", 1, -1)
	require.ErrorIs(t, err, ErrInvalidStock)
}

func TestValidate_RejectsUnknownKind(t *testing.T) {
	item := &Item{Kind: "ALBUM", Name: "x"}
	require.ErrorIs(t, item.Validate(), ErrInvalidKind)

	plain := &Item{Kind: KindItem, Name: "x", Book: &BookDetails{}}
	require.ErrorIs(t, plain.Validate(), ErrInvalidKind)
}

func TestStockChanges(t *testing.T) {
	item, err := NewItem("pen", 100, 10)
	require.NoError(t, err)

	require.NoError(t, item.RemoveStock(2))
	assert.EqualValues(t, 8, item.StockQuantity)

	require.NoError(t, item.AddStock(2))
	assert.EqualValues(t, 10, item.StockQuantity)

	err = item.RemoveStock(11)
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.EqualValues(t, 10, item.StockQuantity)

	require.NoError(t, item.RemoveStock(10))
	assert.Zero(t, item.StockQuantity)

	require.ErrorIs(t, item.AddStock(0), ErrInvalidCount)
	require.ErrorIs(t, item.RemoveStock(-1), ErrInvalidCount)
}

func TestChange_KeepsItemOnInvalidInput(t *testing.T) {
	item, err := NewBook("old", 100, 1, "a", "b")
	require.NoError(t, err)

	require.ErrorIs(t, item.Change("", 5, 5), ErrEmptyName)
	assert.Equal(t, "old", item.Name)

	require.NoError(t, item.Change("new", 200, 3))
	assert.Equal(t, "new", item.Name)
	assert.EqualValues(t, 200, item.Price)
	assert.EqualValues(t, 3, item.StockQuantity)
}
