package rutas

import (
	"html/template"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/formulario"
	"github.com/agroselva/panel_reservas/sesion"
	"github.com/agroselva/panel_reservas/tabla"
)

var columnasReservas = []tabla.Columna{
	{Etiqueta: "ID de Reserva", Campo: "id"},
	{Etiqueta: "DNI del Cliente", Campo: "client_dni"},
	{Etiqueta: "Estado", Campo: "reservation_status"},
	{Etiqueta: "Fecha de Pago", Campo: "payment_date"},
	{Etiqueta: "Fecha de Entrega", Campo: "delivery_date"},
}

var camposFechaEntrega = []formulario.Campo{
	{Nombre: "delivery_date", Etiqueta: "Fecha de Entrega", Tipo: "date", Requerido: true},
}

type datosBusqueda struct {
	Titulo   string
	Avisos   []sesion.Aviso
	DNI      string
	Error    string
	Buscado  bool
	SinDatos bool
	Tabla    template.HTML
	Modal    template.HTML
}

// PaginaBuscarReservas busca reservas por DNI y ofrece las acciones de
// edición de fecha, cambio de estado, detalle y eliminación
func PaginaBuscarReservas(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		dni := q.Get("dni")

		datos := datosBusqueda{
			Titulo:  "Buscar Reserva",
			Avisos:  d.Sesion.Avisos(w, r),
			DNI:     dni,
			Buscado: dni != "",
		}

		var reservas []api.Registro
		if dni != "" {
			var err error
			reservas, err = d.API.ReservationsByDNI(r.Context(), dni)
			if err != nil {
				switch api.StatusOf(err) {
				case http.StatusUnauthorized:
					d.Sesion.ClearToken(w, r)
					http.Redirect(w, r, "/", http.StatusFound)
					return
				case http.StatusNotFound:
					datos.Error = "No se encontró la reserva. Verifica el DNI ingresado."
				default:
					datos.Error = "Ocurrió un error al buscar la reserva."
				}
				reservas = nil
			}
		}
		datos.SinDatos = datos.Buscado && len(reservas) == 0 && datos.Error == ""

		if len(reservas) > 0 {
			base := "/listreservation"
			conDNI := func(ruta string) string {
				return ruta + "?dni=" + url.QueryEscape(dni)
			}
			t := tabla.Tabla{
				BaseURL:  base,
				Columnas: columnasReservas,
				Items:    reservas,
				Consulta: tabla.ConsultaDesdeURL(q),
				Extra:    url.Values{"dni": {dni}},
				Acciones: tabla.Acciones{
					Editar: func(item api.Registro) string {
						return conDNI(base) + "&modal=edit&id=" + url.QueryEscape(item.ID())
					},
					VerDetalle: func(id string) string {
						return "/reservations/" + url.PathEscape(id) + "/products"
					},
					CambiarEstado: func(id string) string {
						return conDNI("/listreservation/" + url.PathEscape(id) + "/status")
					},
					Eliminar: func(id string) string {
						return conDNI("/listreservation/" + url.PathEscape(id) + "/delete")
					},
				},
			}
			var err error
			if datos.Tabla, err = t.HTML(); err != nil {
				d.fallaLectura(w, r, err)
				return
			}
		}

		estado := ModalDesdeURL(q)
		if estado.Editando() {
			cerrar := "/listreservation?dni=" + url.QueryEscape(dni)
			accion := "/listreservation/" + url.PathEscape(estado.ID) + "/date?dni=" + url.QueryEscape(dni)
			f := formulario.Nuevo(accion, cerrar, camposFechaEntrega, buscarPorID(reservas, estado.ID))
			var err error
			if datos.Modal, err = f.HTML(); err != nil {
				d.fallaLectura(w, r, err)
				return
			}
		}
		d.render(w, "buscar", datos)
	}
}

// volverABusqueda regresa a la búsqueda conservando el DNI consultado
func volverABusqueda(w http.ResponseWriter, r *http.Request) {
	destino := "/listreservation"
	if dni := r.URL.Query().Get("dni"); dni != "" {
		destino += "?dni=" + url.QueryEscape(dni)
	}
	http.Redirect(w, r, destino, http.StatusSeeOther)
}

// CambiarEstadoReserva marca la reserva como completada
func CambiarEstadoReserva(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		err := d.API.UpdateReservation(r.Context(), id, map[string]any{"reservation_status": "completed"})
		if err != nil {
			d.Sesion.AddAviso(w, r, "error", "No se pudo realizar el cambio de estado.")
		} else {
			d.Sesion.AddAviso(w, r, "exito", "Se realizo el cambio de estado exitosamente.")
		}
		volverABusqueda(w, r)
	}
}

// CambiarFechaReserva actualiza la fecha de entrega de la reserva; el
// backend rechaza con 402 las fechas a más de una semana
func CambiarFechaReserva(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			volverABusqueda(w, r)
			return
		}
		id := mux.Vars(r)["id"]
		err := d.API.UpdateReservation(r.Context(), id, map[string]any{
			"delivery_date": r.PostFormValue("delivery_date"),
		})
		switch {
		case err == nil:
			d.Sesion.AddAviso(w, r, "exito", "Se realizo el cambio de fecha correctamente.")
		case api.StatusOf(err) == http.StatusPaymentRequired:
			d.Sesion.AddAviso(w, r, "error", "La fecha debe ser anterior a 1 semana")
		default:
			d.Sesion.AddAviso(w, r, "error", "Ocurrió un error al actualizar la fecha de entrega.")
		}
		volverABusqueda(w, r)
	}
}

// EliminarReserva borra la reserva y vuelve a ejecutar la búsqueda
func EliminarReserva(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if err := d.API.DeleteReservation(r.Context(), id); err != nil {
			mensaje := api.DetailOf(err)
			if mensaje == "" {
				mensaje = "Ocurrió un error al eliminar la reserva."
			}
			d.Sesion.AddAviso(w, r, "error", mensaje)
		}
		volverABusqueda(w, r)
	}
}
