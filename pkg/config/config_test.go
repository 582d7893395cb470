package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.APIKey != "company_secret_key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.StockFailChance != 0.05 || cfg.PaymentFailChance != 0.15 || cfg.FaultChance != 0.05 {
		t.Errorf("chances = %v/%v/%v, want 0.05/0.15/0.05",
			cfg.StockFailChance, cfg.PaymentFailChance, cfg.FaultChance)
	}
	if cfg.MinProcessingDelay != 100*time.Millisecond || cfg.MaxProcessingDelay != 400*time.Millisecond {
		t.Errorf("processing delay = [%v, %v]", cfg.MinProcessingDelay, cfg.MaxProcessingDelay)
	}
	if cfg.MinLookupDelay != 50*time.Millisecond || cfg.MaxLookupDelay != 200*time.Millisecond {
		t.Errorf("lookup delay = [%v, %v]", cfg.MinLookupDelay, cfg.MaxLookupDelay)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("GOSHOP_LISTEN", ":9999")
	t.Setenv("GOSHOP_API_KEY", "override_key")
	t.Setenv("GOSHOP_PAYMENT_FAIL_CHANCE", "0.5")
	t.Setenv("GOSHOP_MIN_DELAY_MS", "10")
	t.Setenv("GOSHOP_RAND_SEED", "42")

	cfg := FromEnv()
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.APIKey != "override_key" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
	if cfg.PaymentFailChance != 0.5 {
		t.Errorf("PaymentFailChance = %v", cfg.PaymentFailChance)
	}
	if cfg.MinProcessingDelay != 10*time.Millisecond {
		t.Errorf("MinProcessingDelay = %v", cfg.MinProcessingDelay)
	}
	if cfg.RandSeed != 42 {
		t.Errorf("RandSeed = %d", cfg.RandSeed)
	}
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	t.Setenv("GOSHOP_PAYMENT_FAIL_CHANCE", "not-a-number")
	t.Setenv("GOSHOP_MIN_DELAY_MS", "-5")

	cfg := FromEnv()
	if cfg.PaymentFailChance != 0.15 {
		t.Errorf("malformed chance should fall back to default, got %v", cfg.PaymentFailChance)
	}
	if cfg.MinProcessingDelay != 100*time.Millisecond {
		t.Errorf("negative delay should fall back to default, got %v", cfg.MinProcessingDelay)
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 5 {
		t.Fatalf("len = %d, want 5", len(catalog))
	}
	if catalog[0].ID != "Mouse" || catalog[0].Stock != 100 {
		t.Errorf("first product = %+v", catalog[0])
	}
	if !catalog[0].Price.Equal(decimal.RequireFromString("59.99")) {
		t.Errorf("Mouse price = %s, want 59.99", catalog[0].Price)
	}
}

func TestLoadCatalogEmptyPathUsesDefault(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) != 5 {
		t.Errorf("len = %d, want built-in catalog", len(catalog))
	}
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := writeCatalog(t, `
products:
  - id: Widget
    name: Deluxe Widget
    stock: 7
    price: "19.90"
  - id: Gadget
    stock: 3
    price: "0.50"
`)
	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("len = %d, want 2", len(catalog))
	}
	if catalog[0].Name != "Deluxe Widget" {
		t.Errorf("name = %q", catalog[0].Name)
	}
	if !catalog[0].Price.Equal(decimal.RequireFromString("19.90")) {
		t.Errorf("price = %s", catalog[0].Price)
	}
	if catalog[1].Name != "Gadget" {
		t.Errorf("missing name should fall back to id, got %q", catalog[1].Name)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"no products", "products: []", "no products"},
		{"empty id", "products:\n  - id: \"\"\n    stock: 1\n    price: \"1.00\"", "empty id"},
		{"negative stock", "products:\n  - id: X\n    stock: -1\n    price: \"1.00\"", "negative stock"},
		{"bad price", "products:\n  - id: X\n    stock: 1\n    price: \"abc\"", "price"},
		{"negative price", "products:\n  - id: X\n    stock: 1\n    price: \"-1.00\"", "negative price"},
		{"not yaml", "{{{{", "parse catalog"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCatalog(t, tc.content)
			if _, err := LoadCatalog(path); err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("want error containing %q, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should error")
	}
}
