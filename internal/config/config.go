package config

import (
	"fmt"

	"github.com/Netflix/go-env"
)

// Config carries every knob the bridge reads from the environment.
// ShopifyWebhookSecret may stay empty: an empty secret disables signature
// verification for local work against replayed payloads. CatalogWarmCron may
// stay empty: the region catalog is then only refreshed lazily on demand.
type Config struct {
	IntigoBaseURL     string `env:"INTIGO_BASE_URL,required=true"`
	IntigoAPIKey      string `env:"INTIGO_API_KEY,required=true"`
	PickupAddress     string `env:"PICKUP_ADDRESS,required=true"`
	PickupCity        string `env:"PICKUP_CITY,required=true"`
	PickupSubDivision string `env:"PICKUP_SUBDIVISION,required=true"`

	ShopifyShop          string `env:"SHOPIFY_SHOP,required=true"`
	ShopifyAdminToken    string `env:"SHOPIFY_ADMIN_TOKEN,required=true"`
	ShopifyWebhookSecret string `env:"SHOPIFY_WEBHOOK_SECRET"`

	DatabaseDSN     string `env:"DATABASE_DSN,required=true"`
	RedisURL        string `env:"REDIS_URL,required=true"`
	CatalogWarmCron string `env:"CATALOG_WARM_CRON"`
	APIPort         int    `env:"API_PORT,default=8080"`
	LogLevel        string `env:"LOG_LEVEL,default=info"`
}

func Load() (*Config, error) {
	var cfg Config
	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
