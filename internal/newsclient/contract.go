// contract.go — проверка ответов API новостей по OpenAPI-описанию (kin-openapi).
// Включается EW_NEWS_API_VALIDATE=true: ответ, не соответствующий контракту,
// возвращается клиентом как ошибка.
package newsclient

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi/articles.yaml
var articlesOpenAPI []byte

// Contract — OpenAPI-контракт API статей с маршрутизатором для поиска операций.
type Contract struct {
	doc    *openapi3.T
	router routers.Router
}

// NewContract загружает встроенное OpenAPI-описание и привязывает его
// к фактическому базовому URL API (servers[0].url).
func NewContract(baseURL string) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(articlesOpenAPI)
	if err != nil {
		return nil, fmt.Errorf("загрузка OpenAPI-описания: %w", err)
	}

	doc.Servers = openapi3.Servers{&openapi3.Server{URL: baseURL}}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("некорректное OpenAPI-описание: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("создание OpenAPI-маршрутизатора: %w", err)
	}

	return &Contract{doc: doc, router: router}, nil
}

// Version возвращает версию контракта (info.version).
func (c *Contract) Version() string {
	return c.doc.Info.Version
}

// ValidateResponse проверяет статус, заголовки и тело ответа на запрос req.
func (c *Contract) ValidateResponse(
	ctx context.Context,
	req *http.Request,
	status int,
	header http.Header,
	body []byte,
) error {
	route, pathParams, err := c.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("операция %s %s отсутствует в контракте: %w", req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
		},
	}
	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("нарушение контракта %s: %w", route.Operation.OperationID, err)
	}
	return nil
}
