package http

import (
	natsadapter "github.com/samirrijal/restroomfinder/internal/adapters/nats"
	"github.com/samirrijal/restroomfinder/internal/adapters/postgres"
	"github.com/samirrijal/restroomfinder/internal/adapters/valkey"
	"github.com/samirrijal/restroomfinder/internal/core/ports"
	"github.com/samirrijal/restroomfinder/internal/core/usecases"
	"github.com/samirrijal/restroomfinder/internal/pkg/validator"
)

// Dependencies holds all services needed by HTTP handlers.
// DB, Cache and Events are optional and only consulted by the readiness check.
type Dependencies struct {
	Finder     *usecases.FinderService
	Directions *usecases.DirectionsService
	Restrooms  *usecases.RestroomService
	Postal     ports.PostalLookup
	Validator  *validator.Validator
	DB         *postgres.DB
	Cache      *valkey.Cache
	Events     *natsadapter.Publisher

	// OpenAPIPath defaults to DefaultOpenAPIPath.
	OpenAPIPath string
}
