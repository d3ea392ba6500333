package models

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type SearchConfig struct {
	Limit     int     `mapstructure:"limit"`
	Threshold float64 `mapstructure:"threshold"`
}

type ScanConfig struct {
	Workers      int      `mapstructure:"workers"` // 0 = auto (CPU * 2)
	ExcludePaths []string `mapstructure:"exclude_paths"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type AppConfig struct {
	Store  StoreConfig  `mapstructure:"store"`
	Search SearchConfig `mapstructure:"search"`
	Scan   ScanConfig   `mapstructure:"scan"`
	Server ServerConfig `mapstructure:"server"`
}
