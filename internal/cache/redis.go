package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"weighbridge-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	customerKeyPrefix = "customer:truck:"
	customerTTL       = 5 * time.Minute
)

var client *redis.Client

// Init connects to Redis. The cache is optional: on failure the client
// stays nil and every helper below degrades to a no-op.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetCustomer returns the cached customer record for a normalized truck
// number, or (nil, false) on miss or when Redis is unavailable.
func GetCustomer(ctx context.Context, truckNumber string) (*models.Customer, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, customerKeyPrefix+truckNumber).Bytes()
	if err != nil {
		return nil, false
	}
	var customer models.Customer
	if err := json.Unmarshal(data, &customer); err != nil {
		return nil, false
	}
	return &customer, true
}

// SetCustomer caches a customer under its truck number.
func SetCustomer(ctx context.Context, customer *models.Customer) {
	if client == nil || customer == nil {
		return
	}
	data, err := json.Marshal(customer)
	if err != nil {
		return
	}
	client.Set(ctx, customerKeyPrefix+customer.TruckNumber, data, customerTTL)
}

// InvalidateCustomer drops the cached record after any balance or profile
// mutation.
func InvalidateCustomer(ctx context.Context, truckNumber string) {
	if client == nil {
		return
	}
	client.Del(ctx, customerKeyPrefix+truckNumber)
}
