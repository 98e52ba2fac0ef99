package rutas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendProductos(t *testing.T) (*http.ServeMux, *map[string]any) {
	t.Helper()
	var cuerpoRecibido map[string]any

	backend := http.NewServeMux()
	backend.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`[
				{"id":1,"name":"Café","total_stock":40,"unit_price":12.5,"subcategory_id":3,"is_active":true},
				{"id":2,"name":"Cacao","total_stock":15,"unit_price":8,"subcategory_id":3,"is_active":false}
			]`))
		case http.MethodPost, http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&cuerpoRecibido))
			w.Write([]byte(`{"id":3}`))
		}
	})
	backend.HandleFunc("/subcategories/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":3,"name":"Granos secos","is_active":true}]`))
	})
	return backend, &cuerpoRecibido
}

func TestPaginaProductosConSelectorDeCantidad(t *testing.T) {
	backend, _ := backendProductos(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	PaginaProductos(d)(w, httptest.NewRequest(http.MethodGet, "/product?cantidad=3", nil))

	body := w.Body.String()
	assert.Contains(t, body, "Café")
	assert.Contains(t, body, "/product/1/cart?cantidad=3")
	assert.Contains(t, body, `value="3"`)
	assert.Contains(t, body, "Ir a Reservas")
}

func TestCantidadDesdeURL(t *testing.T) {
	assert.Equal(t, 1, cantidadDesdeURL(url.Values{}))
	assert.Equal(t, 1, cantidadDesdeURL(url.Values{"cantidad": {"0"}}))
	assert.Equal(t, 1, cantidadDesdeURL(url.Values{"cantidad": {"abc"}}))
	assert.Equal(t, 7, cantidadDesdeURL(url.Values{"cantidad": {"7"}}))
}

func TestPaginaProductosModalConSubcategorias(t *testing.T) {
	backend, _ := backendProductos(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	PaginaProductos(d)(w, httptest.NewRequest(http.MethodGet, "/product?modal=add", nil))

	body := w.Body.String()
	assert.Contains(t, body, "Seleccione una opción")
	assert.Contains(t, body, "Granos secos")
}

func TestGuardarProductoConvierteLosNumeros(t *testing.T) {
	backend, cuerpo := backendProductos(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	GuardarProducto(d)(w, peticionForm("/product/save", url.Values{
		"name":           {"Café orgánico"},
		"total_stock":    {"40"},
		"unit_price":     {"12.5"},
		"subcategory_id": {"3"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, map[string]any{
		"name":           "Café orgánico",
		"total_stock":    float64(40),
		"unit_price":     12.5,
		"subcategory_id": float64(3),
		"is_active":      true,
	}, *cuerpo)
}

func TestGuardarProductoEdicionNoTocaElEstado(t *testing.T) {
	backend, cuerpo := backendProductos(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	GuardarProducto(d)(w, peticionForm("/product/save", url.Values{
		"id":             {"2"},
		"name":           {"Cacao fino"},
		"total_stock":    {"20"},
		"unit_price":     {"9"},
		"subcategory_id": {"3"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, *cuerpo, "is_active")
	assert.Equal(t, "Cacao fino", (*cuerpo)["name"])
}

func TestProductoAlCarritoGuardaElRegistroCompleto(t *testing.T) {
	backend, _ := backendProductos(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/product/1/cart?cantidad=3", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "1"})
	ProductoAlCarrito(d)(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/product?cantidad=3", w.Header().Get("Location"))

	avisos := avisosDe(t, d, w)
	require.Len(t, avisos, 1)
	assert.Equal(t, "Producto agregado al carrito con éxito.", avisos[0].Mensaje)

	siguiente := conCookies(httptest.NewRequest(http.MethodGet, "/reservation", nil), cookiesDe(w))
	data := string(d.Sesion.CartJSON(siguiente))
	assert.Contains(t, data, `"quantity":3`)
	// El carrito conserva los campos del producto que no entiende
	assert.Contains(t, data, `"total_stock":40`)
}

func TestProductoAlCarritoInexistente(t *testing.T) {
	backend, _ := backendProductos(t)
	d := ambiente(t, backend)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/product/99/cart", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "99"})
	ProductoAlCarrito(d)(w, r)

	avisos := avisosDe(t, d, w)
	require.Len(t, avisos, 1)
	assert.Equal(t, "Producto no encontrado.", avisos[0].Mensaje)
}
