package rutas

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"net/url"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/carrito"
	"github.com/agroselva/panel_reservas/sesion"
)

//go:embed plantillas/*.html
var plantillas embed.FS

//go:embed static
var estaticos embed.FS

var paginas = template.Must(template.ParseFS(plantillas, "plantillas/*.html"))

// Estaticos sirve la hoja de estilos y demás archivos fijos del panel
func Estaticos() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(mustSub(estaticos, "static"))))
}

func mustSub(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Deps son las dependencias compartidas de todas las páginas del panel
type Deps struct {
	API    *api.Client
	Sesion *sesion.Store
}

func (d *Deps) render(w http.ResponseWriter, nombre string, datos any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := paginas.ExecuteTemplate(w, nombre, datos); err != nil {
		log.Printf("error dibujando %s: %v", nombre, err)
	}
}

// fallaLectura atiende un error al cargar una colección: un 401 significa
// sesión vencida y fuerza el regreso al login, el resto se muestra como
// página de error genérica.
func (d *Deps) fallaLectura(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("error consultando la API: %v", err)
	if api.StatusOf(err) == http.StatusUnauthorized {
		d.Sesion.ClearToken(w, r)
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	d.render(w, "error", datosError{
		Titulo:  "Error",
		Mensaje: "No se pudieron cargar los datos. Intenta de nuevo.",
	})
}

// persistencia ata el carrito a la sesión de esta petición
func (d *Deps) persistencia(w http.ResponseWriter, r *http.Request) carrito.Persistencia {
	return carrito.Persistencia{
		Leer:    func() []byte { return d.Sesion.CartJSON(r) },
		Guardar: func(data []byte) error { return d.Sesion.SetCartJSON(w, r, data) },
		Limpiar: func() error { return d.Sesion.ClearCart(w, r) },
	}
}

type datosError struct {
	Titulo  string
	Mensaje string
}

// EstadoModal es el estado del modal de cada página de gestión, una sola
// variante etiquetada en lugar de banderas sueltas: cerrado, agregando o
// editando un registro concreto.
type EstadoModal struct {
	Modo string
	ID   string
}

// ModalDesdeURL lee el estado del modal de los parámetros de la página
func ModalDesdeURL(valores url.Values) EstadoModal {
	switch valores.Get("modal") {
	case "add":
		return EstadoModal{Modo: "add"}
	case "edit":
		return EstadoModal{Modo: "edit", ID: valores.Get("id")}
	default:
		return EstadoModal{}
	}
}

// Abierto indica si hay un modal visible
func (e EstadoModal) Abierto() bool { return e.Modo != "" }

// Editando indica si el modal edita un registro existente
func (e EstadoModal) Editando() bool { return e.Modo == "edit" }

// buscarPorID localiza un registro en la colección ya cargada; las
// acciones de edición trabajan con el registro completo, no solo el id
func buscarPorID(items []api.Registro, id string) api.Registro {
	for _, item := range items {
		if item.ID() == id {
			return item
		}
	}
	return api.Registro{}
}

// mensajeGuardado traduce el error de un alta o edición al mensaje que
// ve el usuario: los conflictos muestran el detalle del backend o un
// "ya existe" por omisión, los 422 el primer mensaje de validación.
func mensajeGuardado(err error, yaExiste, generico string) string {
	switch api.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		if detalle := api.DetailOf(err); detalle != "" {
			return detalle
		}
		return yaExiste
	case http.StatusUnprocessableEntity:
		if detalle := api.DetailOf(err); detalle != "" {
			return detalle
		}
		return "Error de validación en los datos ingresados."
	default:
		return generico
	}
}
