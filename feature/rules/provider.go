package rules

import (
	"context"
	"errors"
	"fmt"

	"equipment-validator/core/storage"
	"equipment-validator/core/validation"

	"gorm.io/gorm"
)

// ErrUnknownSource is returned for an unsupported rules source.
var ErrUnknownSource = errors.New("unknown rules source")

const (
	SourceOFSC     = "ofsc"
	SourceStorage  = "storage"
	SourceDatabase = "database"
)

// Provider loads the raw rule list from one backing store.
type Provider interface {
	Name() string
	Load(ctx context.Context) ([]validation.Rule, error)
}

// Loader is the part of the OFSC client that reads the rules property.
type Loader interface {
	LoadRules(ctx context.Context) ([]validation.Rule, error)
}

// Deps are the backends a provider may need. Unused ones may be nil.
type Deps struct {
	OFSC    Loader
	Storage storage.Client
	Bucket  string
	Object  string
	DB      *gorm.DB
}

// NewProvider selects the provider for a configured source.
func NewProvider(source string, deps Deps) (Provider, error) {
	switch source {
	case "", SourceOFSC:
		if deps.OFSC == nil {
			return nil, fmt.Errorf("rules source %s: field service client not configured", SourceOFSC)
		}
		return &OFSCProvider{client: deps.OFSC}, nil
	case SourceStorage:
		if deps.Storage == nil {
			return nil, fmt.Errorf("rules source %s: storage not configured", SourceStorage)
		}
		return &StorageProvider{client: deps.Storage, bucket: deps.Bucket, object: deps.Object}, nil
	case SourceDatabase:
		if deps.DB == nil {
			return nil, fmt.Errorf("rules source %s: database not connected", SourceDatabase)
		}
		return &DatabaseProvider{db: deps.DB}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}

// AvailableProviders returns the provider for primary first, then every other
// source whose backend is present in deps.
func AvailableProviders(primary string, deps Deps) []Provider {
	if primary == "" {
		primary = SourceOFSC
	}
	order := []string{primary}
	for _, s := range []string{SourceOFSC, SourceStorage, SourceDatabase} {
		if s != primary {
			order = append(order, s)
		}
	}

	var out []Provider
	for _, s := range order {
		if p, err := NewProvider(s, deps); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// OFSCProvider reads rules from the metadata property.
type OFSCProvider struct {
	client Loader
}

func (p *OFSCProvider) Name() string { return SourceOFSC }

func (p *OFSCProvider) Load(ctx context.Context) ([]validation.Rule, error) {
	return p.client.LoadRules(ctx)
}

// StorageProvider reads a JSON rule snapshot from the bucket.
type StorageProvider struct {
	client storage.Client
	bucket string
	object string
}

func (p *StorageProvider) Name() string { return SourceStorage }

func (p *StorageProvider) Load(ctx context.Context) ([]validation.Rule, error) {
	data, err := storage.GetBytes(ctx, p.client, p.bucket, p.object)
	if err != nil {
		return nil, err
	}
	return validation.ParseRules(data)
}

// DatabaseProvider reads the overrides table in position order.
type DatabaseProvider struct {
	db *gorm.DB
}

func (p *DatabaseProvider) Name() string { return SourceDatabase }

func (p *DatabaseProvider) Load(ctx context.Context) ([]validation.Rule, error) {
	var rows []EquipmentRule
	if err := p.db.WithContext(ctx).Order("position ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TableName, err)
	}

	out := make([]validation.Rule, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToRule())
	}
	return out, nil
}
