package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/adas26/txfb/pkg/builder"
	"github.com/adas26/txfb/pkg/schema"
)

// Catalog is the save and browse loop over a Store: it serializes schemas on
// the way in and parses stored configurations on the way out, degrading per
// item rather than failing the whole listing.
type Catalog struct {
	store  Store
	logger *zap.Logger
}

// NewCatalog wraps a store. A nil logger falls back to a nop logger.
func NewCatalog(store Store, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{store: store, logger: logger}
}

// ListItem is one browsable entry. Title always has a value: parsed from the
// stored configuration when possible, the default placeholder otherwise.
type ListItem struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	FieldCount int       `json:"fieldCount"`
	Created    time.Time `json:"created"`
}

// Save serializes the schema and persists it as a new active record.
func (c *Catalog) Save(ctx context.Context, form schema.FormSchema) (int64, error) {
	title := strings.TrimSpace(form.FormTitle)
	if title == "" {
		return 0, &builder.ValidationError{Field: "formTitle", Message: "form title is required"}
	}

	payload, err := schema.Marshal(form)
	if err != nil {
		return 0, fmt.Errorf("store: serialize form: %w", err)
	}

	id, err := c.store.Add(ctx, FormRecord{
		Title:             title,
		Status:            StatusActive,
		ConfigurationJSON: string(payload),
	})
	if err != nil {
		return 0, err
	}

	c.logger.Info("form saved",
		zap.Int64("id", id),
		zap.String("title", title),
		zap.Int("fields", len(form.Fields)))
	return id, nil
}

// List returns every active record as a browsable item, sorted by title
// case-insensitively. A record whose configuration fails to parse is logged
// and listed under the default title; it never fails the listing.
func (c *Catalog) List(ctx context.Context) ([]ListItem, error) {
	records, err := c.store.Query(ctx, Filter{Status: StatusActive})
	if err != nil {
		return nil, err
	}

	items := make([]ListItem, 0, len(records))
	for _, record := range records {
		item := ListItem{
			ID:      record.ID,
			Created: record.Created,
			Title:   schema.DefaultTitle,
		}

		form, err := schema.Unmarshal([]byte(record.ConfigurationJSON))
		if err != nil {
			c.logger.Warn("skipping malformed form configuration",
				zap.Int64("id", record.ID),
				zap.Error(err))
			items = append(items, item)
			continue
		}

		if title := strings.TrimSpace(form.FormTitle); title != "" {
			item.Title = title
		}
		item.FieldCount = len(form.Fields)
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		left := strings.ToLower(items[i].Title)
		right := strings.ToLower(items[j].Title)
		if left != right {
			return left < right
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// Load fetches one record and parses its configuration.
func (c *Catalog) Load(ctx context.Context, id int64) (schema.FormSchema, error) {
	record, err := c.store.GetByID(ctx, id)
	if err != nil {
		return schema.FormSchema{}, err
	}
	form, err := schema.Unmarshal([]byte(record.ConfigurationJSON))
	if err != nil {
		return schema.FormSchema{}, err
	}
	if strings.TrimSpace(form.FormTitle) == "" {
		form.FormTitle = schema.DefaultTitle
	}
	return form, nil
}
