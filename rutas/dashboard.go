package rutas

import (
	"html/template"
	"net/http"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/sesion"
	"github.com/agroselva/panel_reservas/tabla"
)

type datosDashboard struct {
	Titulo      string
	Avisos      []sesion.Aviso
	Pendientes  int
	Completadas int
	Tabla       template.HTML
}

// Dashboard muestra el panel principal: contadores de reservas
// pendientes y completadas más el listado completo
func Dashboard(d *Deps) http.HandlerFunc {
	columnas := []tabla.Columna{
		{Etiqueta: "ID", Campo: "id"},
		{Etiqueta: "Estado", Campo: "reservation_status"},
		{Etiqueta: "DNI", Campo: "client_dni"},
		{Etiqueta: "Fecha de Recojo", Campo: "delivery_date"},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		reservas, err := d.API.List(r.Context(), "reservations")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}

		datos := datosDashboard{
			Titulo: "Panel Principal",
			Avisos: d.Sesion.Avisos(w, r),
		}
		for _, reserva := range reservas {
			switch api.Stringify(reserva["reservation_status"]) {
			case "pending":
				datos.Pendientes++
			case "completed":
				datos.Completadas++
			}
		}

		t := tabla.Tabla{
			BaseURL:  "/dashboard",
			Columnas: columnas,
			Items:    reservas,
			Consulta: tabla.ConsultaDesdeURL(r.URL.Query()),
		}
		datos.Tabla, err = t.HTML()
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		d.render(w, "dashboard", datos)
	}
}
