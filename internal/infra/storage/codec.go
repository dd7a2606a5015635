package storage

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
)

// LoadCollection desserializa o array guardado sob key. Chave ausente não é
// erro: inicializa a chave com um array vazio e devolve uma slice vazia,
// espelhando o comportamento do armazenamento original.
func LoadCollection[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	if !ok {
		if err := kv.Set(ctx, key, []byte("[]")); err != nil {
			return nil, fmt.Errorf("storage: init %s: %w", key, err)
		}
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// StoreCollection sobrescreve a coleção inteira sob key.
func StoreCollection[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storage: write %s: %w", key, err)
	}
	return nil
}
