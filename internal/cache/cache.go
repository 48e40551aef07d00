// Package cache хранит сериализованные результаты расчетов, чтобы повторные
// запросы с теми же параметрами не пересчитывали график.
package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize - число записей в кэше памяти по умолчанию
const DefaultMemorySize = 10000

// Cache - хранилище результатов по ключу
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Memory - ограниченный по размеру LRU кэш в памяти процесса.
// Просроченные записи удаляются фоновой очисткой библиотеки.
type Memory struct {
	lru *expirable.LRU[string, string]
}

// NewMemory создает кэш в памяти на size записей; ttl <= 0 означает бессрочное хранение
func NewMemory(ttl time.Duration, size int) *Memory {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &Memory{lru: expirable.NewLRU[string, string](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.lru.Add(key, value)
	return nil
}

// Len возвращает число записей в кэше
func (m *Memory) Len() int {
	return m.lru.Len()
}
