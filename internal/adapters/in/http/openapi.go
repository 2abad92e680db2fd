package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPISpec []byte

// SwaggerInstance is the swag registry name the /swagger/ UI reads.
const SwaggerInstance = "storefront"

// Spec returns the embedded OpenAPI document. It is parsed and validated once
// and registered with swag on first use.
var Spec = sync.OnceValues(loadSpec)

func loadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode openapi document: %w", err)
	}
	swag.Register(SwaggerInstance, swaggerDoc(data))
	return doc, nil
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

// documentedRoutes indexes the operations of doc by method and echo path.
func documentedRoutes(doc *openapi3.T) map[string]*routers.Route {
	out := make(map[string]*routers.Route)
	for path, item := range doc.Paths.Map() {
		for method, op := range item.Operations() {
			out[method+" "+echoPath(path)] = &routers.Route{
				Spec:      doc,
				Path:      path,
				PathItem:  item,
				Method:    method,
				Operation: op,
			}
		}
	}
	return out
}

// echoPath turns /orders/{id} into /orders/:id.
func echoPath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			segments[i] = ":" + segment[1:len(segment)-1]
		}
	}
	return strings.Join(segments, "/")
}

// validate checks headers, path parameters and the body against the documented
// operation of the matched route. Undocumented routes pass through.
func (s *Server) validate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		route, ok := s.routes[c.Request().Method+" "+c.Path()]
		if !ok {
			return next(c)
		}

		params := make(map[string]string, len(c.ParamNames()))
		for _, name := range c.ParamNames() {
			params[name] = c.Param(name)
		}
		err := openapi3filter.ValidateRequest(c.Request().Context(), &openapi3filter.RequestValidationInput{
			Request:    c.Request(),
			PathParams: params,
			Route:      route,
		})
		if err != nil {
			return s.fail(c, "validate request", errs.NewValueIsInvalidErrorWithCause("request", err))
		}
		return next(c)
	}
}

// pathParam binds a simple-style path parameter.
func pathParam(c echo.Context, name string) (string, error) {
	var value string
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Required: true})
	if err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	value, err := pathParam(c, name)
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(value)
}
