package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInventoryCSV(t *testing.T) {
	input := strings.Join([]string{
		"SKU,Name,Category,Price,Current_Stock,Optimal_Stock,Unit,Expiry_Date",
		"FRT-001,Apples,Fruit,2.50,40,100,kg,2026-09-30",
		"DRY-001,Milk,Dairy,1.20,15,60,l,",
		",Nameless,Fruit,1.00,1,2,kg,",
	}, "\n")

	items, err := parseInventoryCSV(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "FRT-001", items[0].SKU)
	assert.Equal(t, 100, items[0].OptimalStock)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("2.50")))
	require.NotNil(t, items[0].ExpiryDate)
	assert.Equal(t, "2026-09-30", items[0].ExpiryDate.Format("2006-01-02"))

	assert.Nil(t, items[1].ExpiryDate)
}

func TestParseInventoryCSVRejectsMissingColumns(t *testing.T) {
	_, err := parseInventoryCSV(strings.NewReader("sku,category\nFRT-001,Fruit\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}
