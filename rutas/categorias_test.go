package rutas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendCategorias(t *testing.T) (*http.ServeMux, *map[string]any) {
	t.Helper()
	var cuerpoRecibido map[string]any

	backend := http.NewServeMux()
	backend.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[
				{"id":1,"name":"Granos","is_active":true},
				{"id":2,"name":"Frutas","is_active":false}
			]`))
		case http.MethodPost, http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&cuerpoRecibido))
			w.Write([]byte(`{"id":3}`))
		}
	})
	return backend, &cuerpoRecibido
}

func TestPaginaCategoriasDibujaTablaYAcciones(t *testing.T) {
	backend, _ := backendCategorias(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	PaginaCategorias(d)(w, httptest.NewRequest(http.MethodGet, "/category", nil))

	body := w.Body.String()
	assert.Contains(t, body, "Granos")
	assert.Contains(t, body, "Inactivo")
	assert.Contains(t, body, "/category?modal=add")
	assert.Contains(t, body, "/category/1/disable")
}

func TestPaginaCategoriasModalDeEdicionSembrado(t *testing.T) {
	backend, _ := backendCategorias(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	PaginaCategorias(d)(w, httptest.NewRequest(http.MethodGet, "/category?modal=edit&id=2", nil))

	body := w.Body.String()
	assert.Contains(t, body, `action="/category/save"`)
	assert.Contains(t, body, `name="id" value="2"`)
	assert.Contains(t, body, `value="Frutas"`)
}

func TestPaginaCategoriasModalConErrorYValoresDelUsuario(t *testing.T) {
	backend, _ := backendCategorias(t)
	d := ambiente(t, backend)

	destino := "/category?modal=add&name=Tub%C3%A9rculos&error=La+categor%C3%ADa+ya+existe."
	w := httptest.NewRecorder()
	PaginaCategorias(d)(w, httptest.NewRequest(http.MethodGet, destino, nil))

	body := w.Body.String()
	assert.Contains(t, body, "La categoría ya existe.")
	assert.Contains(t, body, `value="Tubérculos"`)
}

func TestGuardarCategoriaNombreVacioReabreElModal(t *testing.T) {
	backend, _ := backendCategorias(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	GuardarCategoria(d)(w, peticionForm("/category/save", url.Values{"name": {""}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	destino, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/category", destino.Path)
	assert.Equal(t, "add", destino.Query().Get("modal"))
	assert.Equal(t, "El nombre de la categoría es obligatorio.", destino.Query().Get("error"))
}

func TestGuardarCategoriaAlta(t *testing.T) {
	backend, cuerpo := backendCategorias(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	GuardarCategoria(d)(w, peticionForm("/category/save", url.Values{"name": {"Tubérculos"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/category", w.Header().Get("Location"))
	assert.Equal(t, map[string]any{"name": "Tubérculos"}, *cuerpo)
}

func TestGuardarCategoriaEdicionPreservaElEstadoActivo(t *testing.T) {
	backend, cuerpo := backendCategorias(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	GuardarCategoria(d)(w, peticionForm("/category/save", url.Values{
		"id":   {"2"},
		"name": {"Frutas de estación"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	// La categoría 2 estaba inactiva y así debe quedarse
	assert.Equal(t, map[string]any{"name": "Frutas de estación", "is_active": false}, *cuerpo)
}

func TestGuardarCategoriaConflictoReabreConLosValores(t *testing.T) {
	backend := http.NewServeMux()
	backend.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"Category already exists"}`))
	})
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	GuardarCategoria(d)(w, peticionForm("/category/save", url.Values{"name": {"Granos"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	destino, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "Category already exists", destino.Query().Get("error"))
	assert.Equal(t, "Granos", destino.Query().Get("name"))
}

func TestGuardarSubcategoriaAltaConvierteLaCategoria(t *testing.T) {
	var cuerpo map[string]any
	backend := http.NewServeMux()
	backend.HandleFunc("/subcategories/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cuerpo))
		w.Write([]byte(`{"id":9}`))
	})
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	GuardarSubcategoria(d)(w, peticionForm("/subcategory/save", url.Values{
		"name":        {"Café en grano"},
		"measures":    {"kg"},
		"category_id": {"2"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, map[string]any{
		"name":        "Café en grano",
		"measures":    "kg",
		"category_id": float64(2),
		"is_active":   true,
	}, cuerpo)
}
