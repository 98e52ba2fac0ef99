package rutas

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/carrito"
	"github.com/agroselva/panel_reservas/formulario"
	"github.com/agroselva/panel_reservas/tabla"
)

var columnasProductos = []tabla.Columna{
	{Etiqueta: "Código", Campo: "id"},
	{Etiqueta: "Nombre", Campo: "name"},
	{Etiqueta: "Stock Total", Campo: "total_stock"},
	{Etiqueta: "Precio Unitario", Campo: "unit_price"},
	{Etiqueta: "Subcategoría", Campo: "subcategory_id"},
	{Etiqueta: "Activo", Campo: "is_active"},
}

func camposProducto(subcategorias []api.Registro) []formulario.Campo {
	return []formulario.Campo{
		{Nombre: "name", Etiqueta: "Nombre del producto", Tipo: "text", Requerido: true},
		{Nombre: "total_stock", Etiqueta: "Stock Total", Tipo: "number", Requerido: true},
		{Nombre: "unit_price", Etiqueta: "Precio Unitario", Tipo: "number", Requerido: true},
		{Nombre: "subcategory_id", Etiqueta: "Subcategoría", Tipo: "select", Requerido: true, Opciones: opcionesActivas(subcategorias)},
	}
}

// cantidadDesdeURL lee el selector de cantidad; cualquier valor que no
// sea un entero positivo regresa a 1
func cantidadDesdeURL(valores url.Values) int {
	n, err := strconv.Atoi(valores.Get("cantidad"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PaginaProductos muestra la gestión de productos con el selector de
// cantidad y el botón de agregar al carrito por fila
func PaginaProductos(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productos, err := d.API.List(r.Context(), "products")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		subcategorias, err := d.API.List(r.Context(), "subcategories")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}

		q := r.URL.Query()
		cantidad := cantidadDesdeURL(q)
		cantidadStr := strconv.Itoa(cantidad)

		t := tabla.Tabla{
			BaseURL:  "/product",
			Columnas: columnasProductos,
			Items:    productos,
			Consulta: tabla.ConsultaDesdeURL(q),
			Extra:    url.Values{"cantidad": {cantidadStr}},
			Acciones: tabla.Acciones{
				Agregar: "/product?modal=add&cantidad=" + cantidadStr,
				Editar: func(item api.Registro) string {
					return "/product?modal=edit&cantidad=" + cantidadStr + "&id=" + url.QueryEscape(item.ID())
				},
				Deshabilitar: func(id string) string { return "/product/" + url.PathEscape(id) + "/disable" },
				Habilitar:    func(id string) string { return "/product/" + url.PathEscape(id) + "/enable" },
				AlCarrito: func(item api.Registro) string {
					return "/product/" + url.PathEscape(item.ID()) + "/cart?cantidad=" + cantidadStr
				},
			},
		}

		datos := datosGestion{
			Titulo:   "Productos",
			Avisos:   d.Sesion.Avisos(w, r),
			Cantidad: cantidad,
			Enlace:   &enlace{URL: "/reservation", Texto: "Ir a Reservas"},
		}
		if datos.Tabla, err = t.HTML(); err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		campos := camposProducto(subcategorias)
		estado := ModalDesdeURL(q)
		if datos.Modal, err = modalGestion(q, estado, "/product/save", "/product", campos, productos); err != nil {
			d.fallaLectura(w, r, err)
			return
		}
		d.render(w, "gestion", datos)
	}
}

// GuardarProducto atiende el alta y la edición de productos
func GuardarProducto(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/product", http.StatusSeeOther)
			return
		}

		campos := camposProducto(nil)
		cuerpo := map[string]any{
			"name":           r.PostFormValue("name"),
			"total_stock":    numeroOCadena(r.PostFormValue("total_stock")),
			"unit_price":     numeroOCadena(r.PostFormValue("unit_price")),
			"subcategory_id": numeroOCadena(r.PostFormValue("subcategory_id")),
		}

		id := r.PostFormValue("id")
		var err error
		if id == "" {
			cuerpo["is_active"] = true
			_, err = d.API.Create(r.Context(), "products", cuerpo)
		} else {
			_, err = d.API.Update(r.Context(), "products", id, cuerpo)
		}
		if err != nil {
			reintentoGuardado(w, r, "/product", campos,
				mensajeGuardado(err, "El producto ya existe.", "Ocurrió un error al guardar el producto."))
			return
		}
		http.Redirect(w, r, "/product", http.StatusSeeOther)
	}
}

// DeshabilitarProducto marca el producto como inactivo
func DeshabilitarProducto(d *Deps) http.HandlerFunc {
	return cambiarActivo(d, "products", "/product", false)
}

// HabilitarProducto marca el producto como activo
func HabilitarProducto(d *Deps) http.HandlerFunc {
	return cambiarActivo(d, "products", "/product", true)
}

// ProductoAlCarrito agrega el producto completo al carrito con la
// cantidad seleccionada y deja el aviso de éxito
func ProductoAlCarrito(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productos, err := d.API.List(r.Context(), "products")
		if err != nil {
			d.fallaLectura(w, r, err)
			return
		}

		id := mux.Vars(r)["id"]
		producto := buscarPorID(productos, id)
		if producto.ID() == "" {
			d.Sesion.AddAviso(w, r, "error", "Producto no encontrado.")
			http.Redirect(w, r, "/product", http.StatusSeeOther)
			return
		}

		cantidad := cantidadDesdeURL(r.URL.Query())
		c := carrito.Cargar(d.persistencia(w, r))
		if err := c.Agregar(producto, cantidad); err != nil {
			d.Sesion.AddAviso(w, r, "error", "No se pudo agregar el producto al carrito.")
		} else {
			d.Sesion.AddAviso(w, r, "exito", "Producto agregado al carrito con éxito.")
		}
		http.Redirect(w, r, "/product?cantidad="+strconv.Itoa(cantidad), http.StatusSeeOther)
	}
}
