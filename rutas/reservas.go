package rutas

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/carrito"
	"github.com/agroselva/panel_reservas/formulario"
	"github.com/agroselva/panel_reservas/sesion"
)

var camposCheckout = []formulario.Campo{
	{Nombre: "client_dni", Etiqueta: "DNI del Cliente", Tipo: "text", Requerido: true},
}

type datosCarrito struct {
	Titulo string
	Avisos []sesion.Aviso
	Items  []carrito.Item
	Total  float64
	Modal  template.HTML
}

// PaginaCarrito muestra el carrito de compras con sus renglones, el
// total general y el modal de checkout
func PaginaCarrito(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := carrito.Cargar(d.persistencia(w, r))

		datos := datosCarrito{
			Titulo: "Carrito de compras",
			Avisos: d.Sesion.Avisos(w, r),
			Items:  c.Items(),
			Total:  c.Total(),
		}

		if ModalDesdeURL(r.URL.Query()).Abierto() {
			f := formulario.Nuevo("/reservation/checkout", "/reservation", camposCheckout, api.Registro{})
			modal, err := f.HTML()
			if err != nil {
				d.fallaLectura(w, r, err)
				return
			}
			datos.Modal = modal
		}
		d.render(w, "carrito", datos)
	}
}

// CambiarCantidadCarrito actualiza la cantidad de un renglón; los
// valores inválidos se descartan y el renglón conserva su cantidad
func CambiarCantidadCarrito(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err == nil {
			c := carrito.Cargar(d.persistencia(w, r))
			if err := c.CambiarCantidad(r.PostFormValue("id"), r.PostFormValue("quantity")); err != nil {
				log.Printf("no se pudo persistir el carrito: %v", err)
			}
		}
		http.Redirect(w, r, "/reservation", http.StatusSeeOther)
	}
}

// QuitarDelCarrito elimina un renglón del carrito
func QuitarDelCarrito(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := carrito.Cargar(d.persistencia(w, r))
		if err := c.Quitar(mux.Vars(r)["id"]); err != nil {
			log.Printf("no se pudo persistir el carrito: %v", err)
		}
		http.Redirect(w, r, "/reservation", http.StatusSeeOther)
	}
}

// Checkout valida el DNI, envía la reserva al backend y vacía el
// carrito solo cuando la reserva quedó registrada
func Checkout(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/reservation", http.StatusSeeOther)
			return
		}

		c := carrito.Cargar(d.persistencia(w, r))
		err := c.Finalizar(r.Context(), d.API, r.PostFormValue("client_dni"))
		switch {
		case err == nil:
			d.Sesion.AddAviso(w, r, "exito", "Compra realizada con éxito!")
		case errors.Is(err, carrito.ErrDNIInvalido):
			d.Sesion.AddAviso(w, r, "error", "El DNI debe contener 8 dígitos")
		case api.StatusOf(err) == http.StatusUnprocessableEntity:
			d.Sesion.AddAviso(w, r, "error", "DNI inválido. Asegúrate de que tiene 8 dígitos.")
		default:
			log.Printf("error al crear la reserva: %v", err)
			d.Sesion.AddAviso(w, r, "error", "Hubo un problema al realizar la compra. Por favor, intenta de nuevo.")
		}
		http.Redirect(w, r, "/reservation", http.StatusSeeOther)
	}
}
