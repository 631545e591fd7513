package catalog

import (
	"context"
	stdErrors "errors"
	"fmt"

	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/errors"
	"github.com/Ahmad-Alshomaree/kulshy-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// productRow mirrors the catalog's products table.
type productRow struct {
	ID            int              `gorm:"column:id;primaryKey"`
	Name          string           `gorm:"column:name;not null"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric;not null"`
	OriginalPrice *decimal.Decimal `gorm:"column:original_price;type:numeric"`
	Category      string           `gorm:"column:category;not null"`
	IsNew         bool             `gorm:"column:is_new;not null;default:false"`
	IsSale        bool             `gorm:"column:is_sale;not null;default:false"`
	RatingAverage decimal.Decimal  `gorm:"column:rating_average;type:numeric;not null;default:0"`
	RatingCount   int              `gorm:"column:rating_count;not null;default:0"`
	Tags          []string         `gorm:"column:tags;type:json;serializer:json"`
	Image         string           `gorm:"column:image"`
}

func (productRow) TableName() string {
	return "products"
}

// GormProvider reads products from the relational catalog.
type GormProvider struct {
	conn *gorm.DB
}

// NewGormProvider wraps an existing gorm connection and migrates the
// products table when absent.
func NewGormProvider(conn *gorm.DB) (*GormProvider, error) {
	if conn == nil {
		return nil, fmt.Errorf("gorm connection required")
	}
	if err := conn.AutoMigrate(&productRow{}); err != nil {
		return nil, fmt.Errorf("migrating products: %w", err)
	}
	return &GormProvider{conn: conn}, nil
}

// GetProduct resolves a product by id.
func (p *GormProvider) GetProduct(ctx context.Context, id int) (*Product, error) {
	var row productRow
	if err := p.conn.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "product not found")
		}
		return nil, errors.Wrap(errors.CodeDependency, err, "load product")
	}
	product := row.toProduct()
	return &product, nil
}

// Put inserts or replaces a product row. Exposed for seeding and tests.
func (p *GormProvider) Put(ctx context.Context, product Product) error {
	row := rowFromProduct(product)
	return p.conn.WithContext(ctx).Save(&row).Error
}

func (r productRow) toProduct() Product {
	return Product{
		ID:            r.ID,
		Name:          r.Name,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      r.Category,
		IsNew:         r.IsNew,
		IsSale:        r.IsSale,
		Rating:        types.Rating{Average: r.RatingAverage, Count: r.RatingCount},
		Tags:          r.Tags,
		Image:         r.Image,
	}
}

func rowFromProduct(p Product) productRow {
	return productRow{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Category:      p.Category,
		IsNew:         p.IsNew,
		IsSale:        p.IsSale,
		RatingAverage: p.Rating.Average,
		RatingCount:   p.Rating.Count,
		Tags:          p.Tags,
		Image:         p.Image,
	}
}
