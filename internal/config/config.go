// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/magabrotheeeer/fashion-curation/internal/matching"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	HTTPServer              `yaml:"http_server"`
	Matching                matching.Config        `yaml:"matching"`
	Gate                    Gate                   `yaml:"gate"`
	BrandAffinity           matching.BrandAffinity `yaml:"brand_affinity"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ структура для настройки подключения к брокеру тег-снапшотов
type RabbitMQ struct {
	ConnectionString string        `yaml:"connection_string"`
	QueueName        string        `yaml:"queue_name" env-default:"tag-snapshots"`
	ConnectRetries   int           `yaml:"connect_retries" env-default:"5"`
	ConnectDelay     time.Duration `yaml:"connect_delay" env-default:"3s"`
}

// Gate структура для настройки шлюза готовности курации
type Gate struct {
	// MinQualifyingProducts минимум подходящих товаров бренда для статуса ready
	MinQualifyingProducts int `yaml:"min_qualifying_products" env-default:"10"`
	// CheckTimeout таймаут одной проверки готовности
	CheckTimeout time.Duration `yaml:"check_timeout" env-default:"5s"`
	// RequireAllBrands политика общей готовности: true — ждать все бренды,
	// false — достаточно одного готового
	RequireAllBrands bool `yaml:"require_all_brands" env-default:"false"`
	// ScrapeStaleAfter сколько сбор каталога считается идущим после его старта
	ScrapeStaleAfter time.Duration `yaml:"scrape_stale_after" env-default:"30m"`
	// EstimatedWait подсказка для экрана ожидания
	EstimatedWait string `yaml:"estimated_wait" env-default:"24h"`
}

// MustLoad функция для загрузки конфига, путь берётся из переменной CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if err := cfg.Matching.Validate(); err != nil {
		log.Fatalf("invalid matching config: %s", err)
	}
	return &cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  MaxRetries: %d\n"+
			"  DialTimeout: %s\n"+
			"  Timeout: %s\n"+
			"RabbitMQ:\n"+
			"  Queue: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Gate:\n"+
			"  MinQualifyingProducts: %d\n"+
			"  RequireAllBrands: %t\n"+
			"  CheckTimeout: %s\n",
		c.Env,
		c.StorageConnectionString,
		c.AddressRedis,
		c.DB,
		c.MaxRetries,
		c.DialTimeout,
		c.TimeoutRedis,
		c.QueueName,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.Gate.MinQualifyingProducts,
		c.Gate.RequireAllBrands,
		c.Gate.CheckTimeout,
	)
}
