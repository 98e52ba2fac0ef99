package rutas

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/tabla"
)

var columnasDetalle = []tabla.Columna{
	{Etiqueta: "ID", Campo: "id"},
	{Etiqueta: "ID de Reserva", Campo: "reservation_id"},
	{Etiqueta: "Código de Producto", Campo: "product_code"},
	{Etiqueta: "Nombre de Producto", Campo: "product_name"},
	{Etiqueta: "Cantidad", Campo: "quantity"},
}

// PaginaDetalleReserva lista los productos de una reserva cruzando los
// renglones con el catálogo para mostrar cada nombre
func PaginaDetalleReserva(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		reserva, err := d.API.ReservationItems(r.Context(), id)
		if err != nil {
			if api.StatusOf(err) == http.StatusUnauthorized {
				d.Sesion.ClearToken(w, r)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			d.render(w, "error", datosError{
				Titulo:  "Productos de la Reserva",
				Mensaje: "No se pudo cargar los productos de la reserva.",
			})
			return
		}
		productos, err := d.API.List(r.Context(), "products")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}

		nombres := make(map[string]string, len(productos))
		for _, producto := range productos {
			nombres[producto.ID()] = api.Stringify(producto["name"])
		}

		renglones, _ := reserva["items"].([]any)
		var items []api.Registro
		for _, crudo := range renglones {
			renglon, ok := crudo.(map[string]any)
			if !ok {
				continue
			}
			item := api.Registro(renglon)
			nombre, ok := nombres[api.Stringify(item["product_code"])]
			if !ok {
				nombre = "Nombre no encontrado"
			}
			item["product_name"] = nombre
			items = append(items, item)
		}

		t := tabla.Tabla{
			BaseURL:  r.URL.Path,
			Columnas: columnasDetalle,
			Items:    items,
			Consulta: tabla.ConsultaDesdeURL(r.URL.Query()),
		}

		datos := datosGestion{
			Titulo: "Productos de la Reserva",
			Avisos: d.Sesion.Avisos(w, r),
			Enlace: &enlace{URL: "/listreservation", Texto: "Regresar a buscar Reservas"},
		}
		if datos.Tabla, err = t.HTML(); err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		d.render(w, "gestion", datos)
	}
}
