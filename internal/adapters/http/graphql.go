package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/restroomfinder/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	restroomType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Restroom",
		Fields: graphql.Fields{
			"id":              &graphql.Field{Type: graphql.Int},
			"name":            &graphql.Field{Type: graphql.String},
			"street":          &graphql.Field{Type: graphql.String},
			"city":            &graphql.Field{Type: graphql.String},
			"state":           &graphql.Field{Type: graphql.String},
			"latitude":        &graphql.Field{Type: graphql.Float},
			"longitude":       &graphql.Field{Type: graphql.Float},
			"distance":        &graphql.Field{Type: graphql.Float},
			"unisex":          &graphql.Field{Type: graphql.Boolean},
			"accessible":      &graphql.Field{Type: graphql.Boolean},
			"changing_table":  &graphql.Field{Type: graphql.Boolean},
			"directions":      &graphql.Field{Type: graphql.String},
			"comment":         &graphql.Field{Type: graphql.String},
			"positive_rating": &graphql.Field{Type: graphql.Int},
		},
	})

	postalCodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PostalCode",
		Fields: graphql.Fields{
			"zip":       &graphql.Field{Type: graphql.String},
			"latitude":  &graphql.Field{Type: graphql.Float},
			"longitude": &graphql.Field{Type: graphql.Float},
			"city":      &graphql.Field{Type: graphql.String},
			"state":     &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"restrooms": &graphql.Field{
				Type:        graphql.NewList(restroomType),
				Description: "Find restrooms near a location, nearest first",
				Args: graphql.FieldConfigArgument{
					"lat":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"accessible":     &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"unisex":         &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
					"changing_table": &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					at, err := domain.NewResolvedCoordinate(p.Args["lat"].(float64), p.Args["lon"].(float64))
					if err != nil {
						return nil, err
					}
					filters := domain.SearchFilters{
						Accessible:    p.Args["accessible"].(bool),
						Unisex:        p.Args["unisex"].(bool),
						ChangingTable: p.Args["changing_table"].(bool),
					}
					return deps.Restrooms.Search(p.Context, at, filters)
				},
			},
			"postalCode": &graphql.Field{
				Type:        postalCodeType,
				Description: "Get the centroid of a US postal code",
				Args: graphql.FieldConfigArgument{
					"code": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pc, ok := deps.Postal.Lookup(p.Args["code"].(string))
					if !ok {
						return nil, domain.ErrPostalCodeNotFound
					}
					return pc, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
