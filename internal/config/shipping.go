package config

import (
	"encoding/json"
	"log"
	"os"

	"tsurigu_back_end/internal/checkout"
)

// Built-in region → fee table (JPY). Overridable with SHIPPING_FEE_TABLE
// pointing at a JSON file of the same shape, so operations can adjust carrier
// rates without a deploy.
var defaultFeeTable = checkout.FeeTable{
	Fees: map[string]int64{
		"Hokkaido": 1200,
		"Tohoku":   1000,
		"Tokyo":    700,
		"Kanto":    800,
		"Chubu":    900,
		"Kansai":   900,
		"Chugoku":  1000,
		"Shikoku":  1000,
		"Kyushu":   1100,
		"Okinawa":  1500,
	},
	Default: 1000,
}

// LoadFeeTable returns the shipping fee table, preferring the JSON file named
// by SHIPPING_FEE_TABLE when present and parseable.
func LoadFeeTable() checkout.FeeTable {
	path := os.Getenv("SHIPPING_FEE_TABLE")
	if path == "" {
		return defaultFeeTable
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️  Cannot read %s, falling back to built-in fee table: %v", path, err)
		return defaultFeeTable
	}

	var table checkout.FeeTable
	if err := json.Unmarshal(data, &table); err != nil || len(table.Fees) == 0 {
		log.Printf("⚠️  Invalid fee table in %s, falling back to built-in table", path)
		return defaultFeeTable
	}
	if table.Default == 0 {
		table.Default = defaultFeeTable.Default
	}

	log.Printf("✅ Shipping fee table loaded from %s (%d regions)", path, len(table.Fees))
	return table
}
