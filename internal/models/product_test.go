package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	s := ParseSort("price")
	require.NotNil(t, s)
	assert.Equal(t, SortByPrice, s.Field)
	assert.False(t, s.Descending)

	s = ParseSort("-createdAt")
	require.NotNil(t, s)
	assert.Equal(t, SortByCreatedAt, s.Field)
	assert.True(t, s.Descending)

	assert.Nil(t, ParseSort(""))
	assert.Nil(t, ParseSort("-"))
	assert.Nil(t, ParseSort("password"))
}

func TestListProductsFilterSkip(t *testing.T) {
	assert.Equal(t, 0, ListProductsFilter{Page: 1, Limit: 10}.Skip())
	assert.Equal(t, 10, ListProductsFilter{Page: 2, Limit: 10}.Skip())
	assert.Equal(t, 40, ListProductsFilter{Page: 5, Limit: 10}.Skip())
	assert.Equal(t, 0, ListProductsFilter{Page: 0, Limit: 10}.Skip())
	assert.Equal(t, 0, ListProductsFilter{Page: 3, Limit: 0}.Skip())
}

func TestListProductsFilterSkip_Saturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, ListProductsFilter{Page: math.MaxInt, Limit: 2}.Skip())
	assert.Equal(t, math.MaxInt, ListProductsFilter{Page: math.MaxInt / 10, Limit: 100}.Skip())

	page := math.MaxInt/10 + 1
	assert.Equal(t, (page-1)*10, ListProductsFilter{Page: page, Limit: 10}.Skip())
}

func TestUpdateProductRequestApply(t *testing.T) {
	p := &Product{ID: "prod_1", Name: "Lamp", Price: 20, Category: "home", Stock: 3, Description: "desk lamp"}
	price := 25.5
	stock := 0

	(&UpdateProductRequest{Price: &price, Stock: &stock}).Apply(p)

	assert.Equal(t, "Lamp", p.Name)
	assert.Equal(t, 25.5, p.Price)
	assert.Equal(t, "home", p.Category)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, "desk lamp", p.Description)
}
