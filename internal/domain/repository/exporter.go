package repository

import "github.com/Arshath015/Ekonomi/internal/domain/entity"

// ProductExporter renders product results into a downloadable document
type ProductExporter interface {
	// ExportProducts returns the encoded document bytes
	ExportProducts(query string, products []entity.ProductResult) ([]byte, error)

	// ContentType MIME type of the exported document
	ContentType() string

	// Extension file extension including the dot
	Extension() string
}
