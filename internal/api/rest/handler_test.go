package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	app "complaint-bot/internal/application"
	"complaint-bot/internal/domain/classify"
	"complaint-bot/internal/domain/entity"
	"complaint-bot/internal/domain/prompt"
	"complaint-bot/internal/infrastructure/template"
)

type fakeChat struct{ answer string }

func (f fakeChat) Complete(ctx context.Context, messages entity.MessageSequence) (string, error) {
	return f.answer, nil
}

func newTestRouter(t *testing.T, withChat bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := entity.NewCatalog(
		entity.CatalogEntry{Category: "Electronics", Subcategories: []string{"Mobile Phones & Accessories", "Laptops"}},
		entity.CatalogEntry{Category: "Clothing", Subcategories: []string{"Shoes", "Apparel"}},
	)
	require.NoError(t, err)
	renderer, err := template.New("t", "system:\n{{ .Catalog }}\nuser:\n{{ .Transcription }}")
	require.NoError(t, err)

	parser := prompt.NewParser("")
	validator := classify.NewValidator(catalog)
	builder := prompt.NewBuilder(renderer, parser)

	var svc *app.ClassificationService
	if withChat {
		svc = app.NewClassificationService(builder, fakeChat{answer: "Category: electronics\nSubcategory: Laptops"}, validator, nil)
	} else {
		svc = app.NewClassificationService(builder, nil, validator, nil)
	}
	return NewRouter(NewHandler(parser, validator, svc, nil))
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(t, false), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestCatalog(t *testing.T) {
	w := do(t, newTestRouter(t, false), http.MethodGet, "/v1/catalog", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Body.String(), `{"Electronics":`))
}

func TestMessages(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/v1/messages", `{"text":"system:\nrules\nuser:\nhi","context":"c"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp messagesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, entity.MessageSequence{
		{Role: entity.RoleSystem, Content: "rules"},
		{Role: entity.RoleUser, Content: "hi"},
	}, resp.Messages)

	w = do(t, r, http.MethodPost, "/v1/messages", `{"text":"plain","context":"the context"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 1)
	require.Contains(t, resp.Messages[0].Content, "the context")
}

func TestValidate(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/v1/validate", `{"answer":"Category: Electronics\nSubcategory: Bicycles"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res entity.ClassificationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "Electronics", res.Category)
	require.Equal(t, "Mobile Phones & Accessories", res.Subcategory)
	require.True(t, res.Coerced)

	w = do(t, r, http.MethodPost, "/v1/validate", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocate(t *testing.T) {
	r := newTestRouter(t, false)

	w := do(t, r, http.MethodPost, "/v1/locate", `{"description":"large crack visible in the top-left corner","width":1000,"height":800}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res entity.InspectionResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Areas, 1)
	require.Equal(t, entity.BoundingBox{X1: 50, Y1: 40, X2: 450, Y2: 280}, res.Areas[0].Box)

	w = do(t, r, http.MethodPost, "/v1/locate", `{"description":"x","width":-5,"height":10}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "invalid_dimensions")
}

func TestClassify(t *testing.T) {
	w := do(t, newTestRouter(t, true), http.MethodPost, "/v1/classify", `{"transcription":"laptop broke"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp classifyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, entity.ResolutionCategoryFold, resp.Result.Resolution)
	require.Equal(t, "Electronics", resp.Result.Category)
	require.Equal(t, "Mobile Phones & Accessories", resp.Result.Subcategory)
	require.NotEmpty(t, resp.RunID)
}

func TestClassify_NotConfigured(t *testing.T) {
	w := do(t, newTestRouter(t, false), http.MethodPost, "/v1/classify", `{"transcription":"x"}`)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "not_configured")
}
