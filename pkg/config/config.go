package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shopbot/goshop/internal/domain"
)

// Config 服务运行配置，全部来自环境变量（.env 由 cmd/server 先行加载）
type Config struct {
	ListenAddr string
	APIKey     string
	LogLevel   string
	LogFile    string

	// CatalogPath 可选的商品目录 YAML；为空则使用内置目录
	CatalogPath string

	// RandSeed 注入器随机种子；0 表示按时间播种
	RandSeed int64

	// 模拟故障概率与延迟区间
	StockFailChance    float64
	PaymentFailChance  float64
	FaultChance        float64
	MinProcessingDelay time.Duration
	MaxProcessingDelay time.Duration
	MinLookupDelay     time.Duration
	MaxLookupDelay     time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getfloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getms(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return def
}

// FromEnv 读取环境变量，缺失时使用默认值：
// 5% 库存失败、15% 支付失败、5% 内部故障。
func FromEnv() Config {
	return Config{
		ListenAddr:         getenv("GOSHOP_LISTEN", ":8080"),
		APIKey:             getenv("GOSHOP_API_KEY", "company_secret_key"),
		LogLevel:           getenv("GOSHOP_LOG_LEVEL", "info"),
		LogFile:            getenv("GOSHOP_LOG_FILE", ""),
		CatalogPath:        getenv("GOSHOP_CATALOG", ""),
		RandSeed:           getint64("GOSHOP_RAND_SEED", 0),
		StockFailChance:    getfloat("GOSHOP_STOCK_FAIL_CHANCE", 0.05),
		PaymentFailChance:  getfloat("GOSHOP_PAYMENT_FAIL_CHANCE", 0.15),
		FaultChance:        getfloat("GOSHOP_FAULT_CHANCE", 0.05),
		MinProcessingDelay: getms("GOSHOP_MIN_DELAY_MS", 100*time.Millisecond),
		MaxProcessingDelay: getms("GOSHOP_MAX_DELAY_MS", 400*time.Millisecond),
		MinLookupDelay:     getms("GOSHOP_MIN_LOOKUP_DELAY_MS", 50*time.Millisecond),
		MaxLookupDelay:     getms("GOSHOP_MAX_LOOKUP_DELAY_MS", 200*time.Millisecond),
	}
}

// catalogProduct 目录文件里的商品条目；价格用字符串承载避免浮点误差
type catalogProduct struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Stock int    `yaml:"stock"`
	Price string `yaml:"price"`
}

type catalogFile struct {
	Products []catalogProduct `yaml:"products"`
}

// LoadCatalog 解析商品目录 YAML；path 为空时返回内置目录
func LoadCatalog(path string) ([]domain.Product, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", path)
	}

	out := make([]domain.Product, 0, len(file.Products))
	for _, p := range file.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog %s: product with empty id", path)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("catalog %s: product %s has negative stock", path, p.ID)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: product %s price: %w", path, p.ID, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("catalog %s: product %s has negative price", path, p.ID)
		}
		name := p.Name
		if name == "" {
			name = p.ID
		}
		out = append(out, domain.Product{ID: p.ID, Name: name, Stock: p.Stock, Price: price})
	}
	return out, nil
}

// DefaultCatalog 内置商品目录
func DefaultCatalog() []domain.Product {
	return []domain.Product{
		{ID: "Mouse", Name: "Mouse", Stock: 100, Price: decimal.RequireFromString("59.99")},
		{ID: "Keyboard", Name: "Keyboard", Stock: 250, Price: decimal.RequireFromString("249.99")},
		{ID: "Monitor", Name: "Monitor", Stock: 200, Price: decimal.RequireFromString("259.99")},
		{ID: "Chair", Name: "Chair", Stock: 150, Price: decimal.RequireFromString("279.99")},
		{ID: "Notebook", Name: "Notebook", Stock: 300, Price: decimal.RequireFromString("1500.00")},
	}
}
