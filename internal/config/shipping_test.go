package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFeeTableDefault(t *testing.T) {
	os.Unsetenv("SHIPPING_FEE_TABLE")

	table := LoadFeeTable()
	if table.Fees["Tokyo"] != 700 {
		t.Errorf("Tokyo fee = %d, want 700", table.Fees["Tokyo"])
	}
	if table.Default != 1000 {
		t.Errorf("default fee = %d, want 1000", table.Default)
	}
}

func TestLoadFeeTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.json")
	if err := os.WriteFile(path, []byte(`{"fees":{"Tokyo":650},"default":900}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHIPPING_FEE_TABLE", path)

	table := LoadFeeTable()
	if table.Fees["Tokyo"] != 650 {
		t.Errorf("Tokyo fee = %d, want 650", table.Fees["Tokyo"])
	}
	if table.Default != 900 {
		t.Errorf("default fee = %d, want 900", table.Default)
	}
}

func TestLoadFeeTableBadFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.json")
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHIPPING_FEE_TABLE", path)

	table := LoadFeeTable()
	if table.Fees["Tokyo"] != 700 {
		t.Errorf("Tokyo fee = %d, want built-in 700", table.Fees["Tokyo"])
	}
}
