package tabla

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroselva/panel_reservas/api"
)

var columnasPrueba = []Columna{
	{Etiqueta: "ID", Campo: "id"},
	{Etiqueta: "Nombre", Campo: "name"},
	{Etiqueta: "Activo", Campo: "is_active"},
}

func registros() []api.Registro {
	return []api.Registro{
		{"id": float64(1), "name": "Granos", "is_active": true},
		{"id": float64(2), "name": "Frutas", "is_active": false},
		{"id": float64(10), "name": "granadilla", "is_active": true},
	}
}

func TestFiltrarSinTerminoDevuelveCopia(t *testing.T) {
	items := registros()
	out := Filtrar(items, columnasPrueba, "")
	require.Len(t, out, 3)

	out[0] = api.Registro{"id": "x"}
	assert.Equal(t, "1", items[0].ID(), "la entrada no debe mutarse")
}

func TestFiltrarIgnoraMayusculas(t *testing.T) {
	out := Filtrar(registros(), columnasPrueba, "GRAN")
	require.Len(t, out, 2)
	assert.Equal(t, "Granos", out[0]["name"])
	assert.Equal(t, "granadilla", out[1]["name"])
}

func TestFiltrarBuscaEnTodasLasColumnas(t *testing.T) {
	out := Filtrar(registros(), columnasPrueba, "10")
	require.Len(t, out, 1)
	assert.Equal(t, "granadilla", out[0]["name"])
}

func TestOrdenarNumericoNoLexicografico(t *testing.T) {
	out := Ordenar(registros(), "id", "asc")
	assert.Equal(t, []string{"1", "2", "10"}, ids(out))

	out = Ordenar(registros(), "id", "desc")
	assert.Equal(t, []string{"10", "2", "1"}, ids(out))
}

func TestOrdenarEstableEnEmpates(t *testing.T) {
	items := []api.Registro{
		{"id": float64(1), "name": "a", "is_active": true},
		{"id": float64(2), "name": "a", "is_active": true},
		{"id": float64(3), "name": "a", "is_active": true},
	}
	out := Ordenar(items, "name", "asc")
	assert.Equal(t, []string{"1", "2", "3"}, ids(out))
}

func TestConsultaDesdeURL(t *testing.T) {
	q := url.Values{"q": {"caf"}, "orden": {"name"}, "dir": {"desc"}}
	c := ConsultaDesdeURL(q)
	assert.Equal(t, Consulta{Buscar: "caf", Orden: "name", Dir: "desc"}, c)

	// Cualquier dir desconocida cae en ascendente
	c = ConsultaDesdeURL(url.Values{"dir": {"sideways"}})
	assert.Equal(t, "asc", c.Dir)
}

func TestCeldaTraduceActivo(t *testing.T) {
	col := Columna{Etiqueta: "Activo", Campo: "is_active"}
	assert.Equal(t, "Activo", Celda(col, api.Registro{"is_active": true}))
	assert.Equal(t, "Inactivo", Celda(col, api.Registro{"is_active": false}))
	assert.Equal(t, "Inactivo", Celda(col, api.Registro{}))
}

func TestURLOrdenAlternaDireccion(t *testing.T) {
	tb := Tabla{BaseURL: "/category", Columnas: columnasPrueba}

	// Primera vez sobre una columna: ascendente
	u := tb.urlOrden("name")
	assert.Contains(t, u, "orden=name")
	assert.Contains(t, u, "dir=asc")

	// Repetir la columna ya ascendente la invierte
	tb.Consulta = Consulta{Orden: "name", Dir: "asc"}
	assert.Contains(t, tb.urlOrden("name"), "dir=desc")

	// Cambiar de columna reinicia en ascendente
	assert.Contains(t, tb.urlOrden("id"), "dir=asc")
}

func TestHTMLFilaVaciaConBusquedaSinResultados(t *testing.T) {
	tb := Tabla{
		BaseURL:  "/category",
		Columnas: columnasPrueba,
		Items:    registros(),
		Consulta: Consulta{Buscar: "zzz"},
	}
	html, err := tb.HTML()
	require.NoError(t, err)
	assert.Contains(t, string(html), "No hay datos disponibles")
}

func TestHTMLColumnaDeAcciones(t *testing.T) {
	tb := Tabla{
		BaseURL:  "/category",
		Columnas: columnasPrueba,
		Items:    registros(),
	}

	html, err := tb.HTML()
	require.NoError(t, err)
	assert.NotContains(t, string(html), "Acciones")

	tb.Acciones = Acciones{
		Editar:       func(item api.Registro) string { return "/category?modal=edit&id=" + item.ID() },
		Deshabilitar: func(id string) string { return "/category/" + id + "/disable" },
	}
	html, err = tb.HTML()
	require.NoError(t, err)
	s := string(html)
	assert.Contains(t, s, "Acciones")
	assert.Contains(t, s, "/category?modal=edit&amp;id=1")
	assert.Contains(t, s, "/category/2/disable")
	// Deshabilitar es mutadora: viaja como formulario POST
	assert.Contains(t, s, `method="post"`)
}

func TestHTMLConservaParametrosExtra(t *testing.T) {
	tb := Tabla{
		BaseURL:  "/listreservation",
		Columnas: columnasPrueba,
		Items:    registros(),
		Extra:    url.Values{"dni": {"12345678"}},
	}
	html, err := tb.HTML()
	require.NoError(t, err)
	s := string(html)
	// El buscador re-envía el dni y los encabezados lo conservan
	assert.Contains(t, s, `name="dni"`)
	assert.True(t, strings.Contains(s, "dni=12345678"))
}

func ids(items []api.Registro) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID()
	}
	return out
}
