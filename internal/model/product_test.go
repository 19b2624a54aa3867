package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundPrice(t *testing.T) {
	assert.Equal(t, 99.99, RoundPrice(99.99))
	assert.Equal(t, 11.0, RoundPrice(10.999))
	assert.Equal(t, 10.99, RoundPrice(10.994))
	assert.Equal(t, 0.1, RoundPrice(0.1))
	assert.Equal(t, 149.99, RoundPrice(149.985001))
}

func TestProductJSONTags(t *testing.T) {
	raw, err := json.Marshal(Product{ID: 1, Stock: 10, Price: 99.99, Name: "widget", Description: "a widget"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"stock":10,"price":99.99,"name":"widget","description":"a widget"}`, string(raw))
}
