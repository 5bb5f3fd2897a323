package app

import (
	"github.com/shreejewels/storefront/config"
	"github.com/shreejewels/storefront/internal/auth"
	"github.com/shreejewels/storefront/internal/catalog"
	"github.com/shreejewels/storefront/internal/media"
	"github.com/shreejewels/storefront/internal/projection"
	"github.com/shreejewels/storefront/internal/repository"
)

// StoreProvider provides repository access
type StoreProvider interface {
	Store() repository.Store
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the admin mutation services
type CatalogProvider interface {
	Catalog() *catalog.Services
}

// ProjectionProvider provides the public read views
type ProjectionProvider interface {
	Projections() *projection.Service
}

// MediaProvider provides the image resolver and its store
type MediaProvider interface {
	Media() *media.Resolver
}

// AuthProvider provides the admin credential check
type AuthProvider interface {
	Authenticator() auth.Authenticator
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	StoreProvider
	ConfigProvider
	CatalogProvider
	ProjectionProvider
	MediaProvider
	AuthProvider
}
