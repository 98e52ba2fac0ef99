// Package tabla implementa la tabla genérica del panel: una vista
// ordenable y filtrable sobre los registros que le pasa cada página.
// Nunca llama a la API por su cuenta; las acciones disponibles las
// decide quien la compone.
package tabla

import (
	"embed"
	"html/template"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/agroselva/panel_reservas/api"
)

//go:embed tabla.html
var plantillas embed.FS

var tmpl = template.Must(template.ParseFS(plantillas, "tabla.html"))

// Columna define una columna visible: la etiqueta del encabezado y el
// campo del registro que se muestra
type Columna struct {
	Etiqueta string
	Campo    string
}

// Consulta es el estado de búsqueda y orden que viaja en la URL
type Consulta struct {
	Buscar string
	Orden  string
	Dir    string
}

// ConsultaDesdeURL lee q, orden y dir de los parámetros de la página
func ConsultaDesdeURL(valores url.Values) Consulta {
	dir := valores.Get("dir")
	if dir != "desc" {
		dir = "asc"
	}
	return Consulta{
		Buscar: valores.Get("q"),
		Orden:  valores.Get("orden"),
		Dir:    dir,
	}
}

// Filtrar conserva los registros donde alguna columna contiene el
// término, sin distinguir mayúsculas. Con término vacío devuelve todo.
func Filtrar(items []api.Registro, columnas []Columna, termino string) []api.Registro {
	if termino == "" {
		out := make([]api.Registro, len(items))
		copy(out, items)
		return out
	}
	termino = strings.ToLower(termino)
	var out []api.Registro
	for _, item := range items {
		for _, col := range columnas {
			if strings.Contains(strings.ToLower(api.Stringify(item[col.Campo])), termino) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Ordenar devuelve los registros ordenados por el campo indicado con el
// orden natural del valor: numérico entre números, lexicográfico en el
// resto. El orden es estable respecto a la entrada.
func Ordenar(items []api.Registro, campo, dir string) []api.Registro {
	out := make([]api.Registro, len(items))
	copy(out, items)
	if campo == "" {
		return out
	}
	factor := 1
	if dir == "desc" {
		factor = -1
	}
	sort.SliceStable(out, func(i, j int) bool {
		return comparar(out[i][campo], out[j][campo])*factor < 0
	})
	return out
}

func comparar(a, b any) int {
	na, okA := comoNumero(a)
	nb, okB := comoNumero(b)
	if okA && okB {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(api.Stringify(a), api.Stringify(b))
}

func comoNumero(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		n, err := strconv.ParseFloat(val, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Aplicar filtra y luego ordena según la consulta
func (c Consulta) Aplicar(items []api.Registro, columnas []Columna) []api.Registro {
	return Ordenar(Filtrar(items, columnas, c.Buscar), c.Orden, c.Dir)
}

// Acciones declara qué botones lleva cada fila. Solo se dibuja un botón
// cuando su constructor de URL está presente; editar y agregar-al-carrito
// reciben el registro completo, el resto únicamente el id.
type Acciones struct {
	Agregar       string
	Editar        func(api.Registro) string
	Deshabilitar  func(id string) string
	Habilitar     func(id string) string
	AlCarrito     func(api.Registro) string
	VerDetalle    func(id string) string
	CambiarEstado func(id string) string
	Eliminar      func(id string) string
}

// Alguna indica si existe al menos una acción por fila
func (a Acciones) Alguna() bool {
	return a.Editar != nil || a.Deshabilitar != nil || a.Habilitar != nil ||
		a.AlCarrito != nil || a.VerDetalle != nil || a.CambiarEstado != nil || a.Eliminar != nil
}

// Tabla reúne todo lo necesario para dibujar una página de tabla
type Tabla struct {
	BaseURL  string
	Columnas []Columna
	Items    []api.Registro
	Consulta Consulta
	Acciones Acciones
	// Extra son parámetros que los enlaces de la tabla deben conservar
	// (por ejemplo el dni de la búsqueda de reservas)
	Extra url.Values
}

type boton struct {
	URL      string
	Texto    string
	Clase    string
	Mutadora bool
	Confirma bool
}

type encabezado struct {
	Etiqueta  string
	URL       string
	Indicador string
}

type fila struct {
	Celdas  []string
	Botones []boton
}

type vista struct {
	BaseURL     string
	Buscar      string
	Ocultos     []parOculto
	Agregar     string
	Encabezados []encabezado
	ConAcciones bool
	Filas       []fila
	Colspan     int
}

type parOculto struct {
	Nombre string
	Valor  string
}

// HTML dibuja la tabla completa: buscador, encabezados ordenables,
// filas filtradas y columna de acciones cuando corresponde
func (t Tabla) HTML() (template.HTML, error) {
	visibles := t.Consulta.Aplicar(t.Items, t.Columnas)

	v := vista{
		BaseURL:     t.BaseURL,
		Buscar:      t.Consulta.Buscar,
		Agregar:     t.Acciones.Agregar,
		ConAcciones: t.Acciones.Alguna(),
	}
	v.Colspan = len(t.Columnas)
	if v.ConAcciones {
		v.Colspan++
	}

	for nombre, valores := range t.Extra {
		for _, valor := range valores {
			v.Ocultos = append(v.Ocultos, parOculto{Nombre: nombre, Valor: valor})
		}
	}

	for _, col := range t.Columnas {
		v.Encabezados = append(v.Encabezados, encabezado{
			Etiqueta:  col.Etiqueta,
			URL:       t.urlOrden(col.Campo),
			Indicador: t.indicador(col.Campo),
		})
	}

	for _, item := range visibles {
		f := fila{Botones: t.botones(item)}
		for _, col := range t.Columnas {
			f.Celdas = append(f.Celdas, Celda(col, item))
		}
		v.Filas = append(v.Filas, f)
	}

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, "tabla", v); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}

// Celda calcula el texto de una celda. El campo is_active se traduce a
// Activo/Inactivo; todo lo demás se muestra tal cual.
func Celda(col Columna, item api.Registro) string {
	if col.Campo == "is_active" {
		if activo, _ := item[col.Campo].(bool); activo {
			return "Activo"
		}
		return "Inactivo"
	}
	return api.Stringify(item[col.Campo])
}

// urlOrden arma el enlace del encabezado: repetir la columna invierte la
// dirección, cambiar de columna reinicia en ascendente
func (t Tabla) urlOrden(campo string) string {
	dir := "asc"
	if t.Consulta.Orden == campo && t.Consulta.Dir == "asc" {
		dir = "desc"
	}
	q := url.Values{}
	for nombre, valores := range t.Extra {
		q[nombre] = valores
	}
	if t.Consulta.Buscar != "" {
		q.Set("q", t.Consulta.Buscar)
	}
	q.Set("orden", campo)
	q.Set("dir", dir)
	return t.BaseURL + "?" + q.Encode()
}

func (t Tabla) indicador(campo string) string {
	if t.Consulta.Orden != campo {
		return ""
	}
	if t.Consulta.Dir == "desc" {
		return " ↓"
	}
	return " ↑"
}

func (t Tabla) botones(item api.Registro) []boton {
	id := item.ID()
	var out []boton
	if t.Acciones.Editar != nil {
		out = append(out, boton{URL: t.Acciones.Editar(item), Texto: "Editar", Clase: "text-blue-400 hover:text-blue-600"})
	}
	if t.Acciones.Deshabilitar != nil {
		out = append(out, boton{URL: t.Acciones.Deshabilitar(id), Texto: "Deshabilitar", Clase: "text-red-400 hover:text-red-600", Mutadora: true})
	}
	if t.Acciones.Habilitar != nil {
		out = append(out, boton{URL: t.Acciones.Habilitar(id), Texto: "Habilitar", Clase: "text-green-400 hover:text-green-600", Mutadora: true})
	}
	if t.Acciones.AlCarrito != nil {
		out = append(out, boton{URL: t.Acciones.AlCarrito(item), Texto: "Al carrito", Clase: "text-green-400 hover:text-green-600", Mutadora: true})
	}
	if t.Acciones.VerDetalle != nil {
		out = append(out, boton{URL: t.Acciones.VerDetalle(id), Texto: "Ver productos", Clase: "text-yellow-300 hover:text-yellow-600"})
	}
	if t.Acciones.CambiarEstado != nil {
		out = append(out, boton{URL: t.Acciones.CambiarEstado(id), Texto: "Cambiar estado", Clase: "text-green-400 hover:text-green-600", Mutadora: true})
	}
	if t.Acciones.Eliminar != nil {
		out = append(out, boton{URL: t.Acciones.Eliminar(id), Texto: "Eliminar", Clase: "text-red-400 hover:text-red-600", Mutadora: true, Confirma: true})
	}
	return out
}
