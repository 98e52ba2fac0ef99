package rutas

import (
	"net/http"
	"net/url"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/formulario"
	"github.com/agroselva/panel_reservas/tabla"
)

var columnasSubcategorias = []tabla.Columna{
	{Etiqueta: "ID", Campo: "id"},
	{Etiqueta: "Nombre", Campo: "name"},
	{Etiqueta: "Medidas", Campo: "measures"},
	{Etiqueta: "Categoría", Campo: "category_id"},
	{Etiqueta: "Activo", Campo: "is_active"},
}

// camposSubcategoria arma los campos del formulario con el select de
// categorías activas de esta petición
func camposSubcategoria(categorias []api.Registro) []formulario.Campo {
	return []formulario.Campo{
		{Nombre: "name", Etiqueta: "Nombre", Tipo: "text", Requerido: true},
		{Nombre: "measures", Etiqueta: "Medidas", Tipo: "text", Requerido: true},
		{Nombre: "category_id", Etiqueta: "Categoría", Tipo: "select", Requerido: true, Opciones: opcionesActivas(categorias)},
	}
}

// PaginaSubcategorias muestra la gestión de subcategorías
func PaginaSubcategorias(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subcategorias, err := d.API.List(r.Context(), "subcategories")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		categorias, err := d.API.List(r.Context(), "categories")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}

		q := r.URL.Query()
		t := tabla.Tabla{
			BaseURL:  "/subcategory",
			Columnas: columnasSubcategorias,
			Items:    subcategorias,
			Consulta: tabla.ConsultaDesdeURL(q),
			Acciones: tabla.Acciones{
				Agregar: "/subcategory?modal=add",
				Editar: func(item api.Registro) string {
					return "/subcategory?modal=edit&id=" + url.QueryEscape(item.ID())
				},
				Deshabilitar: func(id string) string { return "/subcategory/" + url.PathEscape(id) + "/disable" },
				Habilitar:    func(id string) string { return "/subcategory/" + url.PathEscape(id) + "/enable" },
			},
		}

		datos := datosGestion{
			Titulo: "Subcategorías",
			Avisos: d.Sesion.Avisos(w, r),
		}
		if datos.Tabla, err = t.HTML(); err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		campos := camposSubcategoria(categorias)
		estado := ModalDesdeURL(q)
		if datos.Modal, err = modalGestion(q, estado, "/subcategory/save", "/subcategory", campos, subcategorias); err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		d.render(w, "gestion", datos)
	}
}

// GuardarSubcategoria atiende el alta y la edición de subcategorías
func GuardarSubcategoria(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/subcategory", http.StatusSeeOther)
			return
		}

		campos := camposSubcategoria(nil)
		cuerpo := map[string]any{
			"name":        r.PostFormValue("name"),
			"measures":    r.PostFormValue("measures"),
			"category_id": numeroOCadena(r.PostFormValue("category_id")),
		}

		id := r.PostFormValue("id")
		var err error
		if id == "" {
			cuerpo["is_active"] = true
			_, err = d.API.Create(r.Context(), "subcategories", cuerpo)
		} else {
			_, err = d.API.Update(r.Context(), "subcategories", id, cuerpo)
		}
		if err != nil {
			reintentoGuardado(w, r, "/subcategory", campos,
				mensajeGuardado(err, "La subcategoría ya existe.", "Ocurrió un error al guardar la subcategoría."))
			return
		}
		http.Redirect(w, r, "/subcategory", http.StatusSeeOther)
	}
}

// DeshabilitarSubcategoria marca la subcategoría como inactiva
func DeshabilitarSubcategoria(d *Deps) http.HandlerFunc {
	return cambiarActivo(d, "subcategories", "/subcategory", false)
}

// HabilitarSubcategoria marca la subcategoría como activa
func HabilitarSubcategoria(d *Deps) http.HandlerFunc {
	return cambiarActivo(d, "subcategories", "/subcategory", true)
}
