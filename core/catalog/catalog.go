package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"equipment-validator/core/ofsc"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Unknown is returned for types the catalog has no description for.
const Unknown = "Unknown"

// Lister pages through an enumeration property.
type Lister interface {
	EnumerationList(ctx context.Context, label string, limit, offset int) (*ofsc.EnumerationPage, error)
}

// Catalog maps equipment type identifiers to human readable descriptions.
type Catalog struct {
	lister    Lister
	property  string
	pageSize  int
	ttl       time.Duration
	preferred []language.Tag
	cache     *cache.Cache
	logger    *zap.Logger

	mu       sync.Mutex
	loadedAt time.Time
}

// New creates a catalog reading the given enumeration property.
func New(lister Lister, property string, pageSize int, cfg Config, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	preferred := ParseLanguages(cfg.Languages)

	return &Catalog{
		lister:    lister,
		property:  property,
		pageSize:  pageSize,
		ttl:       ttl,
		preferred: preferred,
		cache:     cache.New(ttl, 2*ttl),
		logger:    logger,
	}
}

// ParseLanguages parses a comma separated language list. Invalid entries are skipped.
func ParseLanguages(s string) []language.Tag {
	var tags []language.Tag
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tag, err := language.Parse(part)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		tags = []language.Tag{language.Spanish, language.English}
	}
	return tags
}

// Loaded reports whether descriptions are loaded and still fresh.
func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loadedAt.IsZero() && time.Since(c.loadedAt) < c.ttl
}

// Preload fetches every page of the enumeration once per TTL window.
func (c *Catalog) Preload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loadedAt.IsZero() && time.Since(c.loadedAt) < c.ttl {
		return nil
	}

	start := time.Now()
	count := 0
	offset := 0
	for {
		page, err := c.lister.EnumerationList(ctx, c.property, c.pageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to load %s enumeration: %w", c.property, err)
		}
		for _, item := range page.Items {
			if item.Label == "" {
				continue
			}
			c.cache.SetDefault(item.Label, c.pick(item))
			count++
		}
		if !page.HasMore || len(page.Items) == 0 {
			break
		}
		offset += c.pageSize
	}

	c.loadedAt = time.Now()
	c.logger.Debug("Catalog loaded",
		zap.String("property", c.property),
		zap.Int("entries", count),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// pick chooses the best translated name, falling back to the label.
func (c *Catalog) pick(item ofsc.EnumerationItem) string {
	if len(item.Translations) == 0 {
		return item.Label
	}

	available := make([]language.Tag, 0, len(item.Translations))
	names := make([]string, 0, len(item.Translations))
	for _, tr := range item.Translations {
		tag, err := language.Parse(tr.Language)
		if err != nil || strings.TrimSpace(tr.Name) == "" {
			continue
		}
		available = append(available, tag)
		names = append(names, tr.Name)
	}
	if len(available) == 0 {
		return item.Label
	}

	for _, want := range c.preferred {
		wantBase, _ := want.Base()
		for i, tag := range available {
			if base, _ := tag.Base(); base == wantBase {
				return norm.NFC.String(strings.TrimSpace(names[i]))
			}
		}
	}
	return item.Label
}

// Set stores a description directly.
func (c *Catalog) Set(typeID, description string) {
	c.cache.SetDefault(typeID, description)
}

// Describe returns the description for a type, or Unknown.
func (c *Catalog) Describe(typeID string) string {
	if v, ok := c.cache.Get(typeID); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return Unknown
}

// Len returns the number of cached descriptions.
func (c *Catalog) Len() int {
	return c.cache.ItemCount()
}
