package todo

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/zeusync/jecs/internal/core/storage"
	"github.com/zeusync/jecs/internal/core/storage/interfaces"
)

// persistence gathers every item each tick and writes the list as one JSON
// document under key.
type persistence struct {
	store   interfaces.Storage
	key     string
	records []Item
}

func (p *persistence) reset() {
	p.records = make([]Item, 0, len(p.records))
}

func (p *persistence) gather(item Item) {
	p.records = append(p.records, item)
}

func (p *persistence) save(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	records := p.records
	if records == nil {
		records = []Item{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode todos: %w", err)
	}
	if err := p.store.Store(ctx, p.key, raw); err != nil {
		return fmt.Errorf("save todos under %q: %w", p.key, err)
	}
	return nil
}

// load returns the stored items; a missing key is an empty list.
func (p *persistence) load(ctx context.Context) ([]Item, error) {
	if p.store == nil {
		return nil, nil
	}
	raw, err := p.store.Fetch(ctx, p.key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load todos from %q: %w", p.key, err)
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode todos from %q: %w", p.key, err)
	}
	return items, nil
}

// saved returns the items last gathered for saving.
func (p *persistence) saved() []Item {
	out := make([]Item, len(p.records))
	copy(out, p.records)
	return out
}
