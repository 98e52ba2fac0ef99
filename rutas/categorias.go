package rutas

import (
	"net/http"
	"net/url"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/formulario"
	"github.com/agroselva/panel_reservas/tabla"
)

var columnasCategorias = []tabla.Columna{
	{Etiqueta: "ID", Campo: "id"},
	{Etiqueta: "Nombre", Campo: "name"},
	{Etiqueta: "Activo", Campo: "is_active"},
}

var camposCategoria = []formulario.Campo{
	{Nombre: "name", Etiqueta: "Nombre", Tipo: "text", Requerido: true},
}

// PaginaCategorias muestra la gestión de categorías: tabla con alta,
// edición y habilitar/deshabilitar
func PaginaCategorias(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categorias, err := d.API.List(r.Context(), "categories")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}

		q := r.URL.Query()
		t := tabla.Tabla{
			BaseURL:  "/category",
			Columnas: columnasCategorias,
			Items:    categorias,
			Consulta: tabla.ConsultaDesdeURL(q),
			Acciones: tabla.Acciones{
				Agregar: "/category?modal=add",
				Editar: func(item api.Registro) string {
					return "/category?modal=edit&id=" + url.QueryEscape(item.ID())
				},
				Deshabilitar: func(id string) string { return "/category/" + url.PathEscape(id) + "/disable" },
				Habilitar:    func(id string) string { return "/category/" + url.PathEscape(id) + "/enable" },
			},
		}

		datos := datosGestion{
			Titulo: "Categorías",
			Avisos: d.Sesion.Avisos(w, r),
		}
		if datos.Tabla, err = t.HTML(); err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		estado := ModalDesdeURL(q)
		if datos.Modal, err = modalGestion(q, estado, "/category/save", "/category", camposCategoria, categorias); err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		d.render(w, "gestion", datos)
	}
}

// GuardarCategoria atiende el alta y la edición; en la edición se
// preserva el estado activo vigente del registro
func GuardarCategoria(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/category", http.StatusSeeOther)
			return
		}

		nombre := r.PostFormValue("name")
		if nombre == "" {
			reintentoGuardado(w, r, "/category", camposCategoria, "El nombre de la categoría es obligatorio.")
			return
		}

		id := r.PostFormValue("id")
		var err error
		if id == "" {
			_, err = d.API.Create(r.Context(), "categories", map[string]any{"name": nombre})
		} else {
			categorias, errLista := d.API.List(r.Context(), "categories")
			if errLista != nil {
				d.fallaLectura(w, r, errLista)
				return
			}
			actual := buscarPorID(categorias, id)
			activo, _ := actual["is_active"].(bool)
			_, err = d.API.Update(r.Context(), "categories", id, map[string]any{
				"name":      nombre,
				"is_active": activo,
			})
		}
		if err != nil {
			reintentoGuardado(w, r, "/category", camposCategoria,
				mensajeGuardado(err, "La categoría ya existe.", "Ocurrió un error al guardar la categoría."))
			return
		}
		http.Redirect(w, r, "/category", http.StatusSeeOther)
	}
}

// DeshabilitarCategoria marca la categoría como inactiva
func DeshabilitarCategoria(d *Deps) http.HandlerFunc {
	return cambiarActivo(d, "categories", "/category", false)
}

// HabilitarCategoria marca la categoría como activa
func HabilitarCategoria(d *Deps) http.HandlerFunc {
	return cambiarActivo(d, "categories", "/category", true)
}
