package rutas

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/formulario"
	"github.com/agroselva/panel_reservas/sesion"
)

// datosGestion alimenta la página compartida de los recursos del
// catálogo: tabla, modal opcional y extras de cada página
type datosGestion struct {
	Titulo   string
	Avisos   []sesion.Aviso
	Cantidad int
	Tabla    template.HTML
	Modal    template.HTML
	Enlace   *enlace
}

type enlace struct {
	URL   string
	Texto string
}

// modalGestion arma el modal de la página según su estado: cerrado,
// alta con campos vacíos, edición sembrada del registro completo, o la
// repetición de un guardado fallido con los valores que envió el usuario
func modalGestion(q url.Values, estado EstadoModal, accion, cerrar string, campos []formulario.Campo, items []api.Registro) (template.HTML, error) {
	if !estado.Abierto() {
		return "", nil
	}

	var f formulario.Formulario
	if mensaje := q.Get("error"); mensaje != "" {
		valores := map[string]string{"id": estado.ID}
		for _, campo := range campos {
			valores[campo.Nombre] = q.Get(campo.Nombre)
		}
		f = formulario.ConValores(accion, cerrar, campos, valores).ConError(mensaje)
	} else if estado.Editando() {
		f = formulario.Nuevo(accion, cerrar, campos, buscarPorID(items, estado.ID))
	} else {
		f = formulario.Nuevo(accion, cerrar, campos, api.Registro{})
	}
	return f.HTML()
}

// reintentoGuardado redirige de vuelta a la página con el modal abierto,
// el mensaje de error y los valores que el usuario había capturado
func reintentoGuardado(w http.ResponseWriter, r *http.Request, base string, campos []formulario.Campo, mensaje string) {
	valores := url.Values{}
	if id := r.PostFormValue("id"); id != "" {
		valores.Set("modal", "edit")
		valores.Set("id", id)
	} else {
		valores.Set("modal", "add")
	}
	for _, campo := range campos {
		valores.Set(campo.Nombre, r.PostFormValue(campo.Nombre))
	}
	valores.Set("error", mensaje)
	http.Redirect(w, r, base+"?"+valores.Encode(), http.StatusSeeOther)
}

// cambiarActivo habilita o deshabilita un registro del recurso y regresa
// a su página de gestión
func cambiarActivo(d *Deps, recurso, base string, activo bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if _, err := d.API.Update(r.Context(), recurso, id, map[string]any{"is_active": activo}); err != nil {
			if api.StatusOf(err) == http.StatusUnauthorized {
				d.Sesion.ClearToken(w, r)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			d.Sesion.AddAviso(w, r, "error", "No se pudo actualizar el estado.")
		}
		http.Redirect(w, r, base, http.StatusSeeOther)
	}
}

// numeroOCadena convierte los valores de campos number y select a número
// al momento del envío; hasta entonces viajan como cadenas
func numeroOCadena(v string) any {
	if n, err := strconv.ParseFloat(v, 64); err == nil {
		if n == float64(int64(n)) {
			return int64(n)
		}
		return n
	}
	return v
}

// opcionesActivas convierte los registros activos de una colección en
// opciones de un campo select
func opcionesActivas(items []api.Registro) []formulario.Opcion {
	var opciones []formulario.Opcion
	for _, item := range items {
		if activo, _ := item["is_active"].(bool); !activo {
			continue
		}
		opciones = append(opciones, formulario.Opcion{
			ID:     item.ID(),
			Nombre: api.Stringify(item["name"]),
		})
	}
	return opciones
}
