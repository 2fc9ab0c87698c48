package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// NearbyRestroomsHandler lists directory records around a coordinate.
func NearbyRestroomsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lon") == "" {
			return errBadRequest(c, "lat and lon are required")
		}
		at, err := domain.NewResolvedCoordinate(c.QueryFloat("lat", 0), c.QueryFloat("lon", 0))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		filters := domain.SearchFilters{
			Accessible:    c.QueryBool("accessible", false),
			Unisex:        c.QueryBool("unisex", false),
			ChangingTable: c.QueryBool("changing_table", false),
		}

		restrooms, err := deps.Restrooms.Search(c.UserContext(), at, filters)
		if err != nil {
			LoggerFromCtx(c.UserContext()).Warn("directory search failed", "error", err)
			return errUpstream(c, "restroom directory unavailable")
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(restrooms)
	}
}

// GetPostalCodeHandler returns the centroid of a US postal code.
func GetPostalCodeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("code")
		if err := deps.Validator.Var(code, "required,us_zip"); err != nil {
			return errBadRequest(c, "code must be a US zip code")
		}
		pc, ok := deps.Postal.Lookup(code)
		if !ok {
			return errNotFound(c, "postal code not found")
		}
		return c.JSON(pc)
	}
}
