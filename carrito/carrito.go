// Package carrito mantiene la lista de productos seleccionados para una
// reserva. Cada operación que muta el carrito vuelve a persistir el
// arreglo completo antes de regresar, así la sesión y la memoria nunca
// se desincronizan.
package carrito

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/agroselva/panel_reservas/api"
)

// ErrDNIInvalido se devuelve cuando el DNI no tiene exactamente 8
// caracteres; en ese caso no se hace ninguna llamada a la API.
var ErrDNIInvalido = errors.New("el DNI debe contener 8 dígitos")

// Persistencia son las operaciones de guardado que el carrito necesita.
// Las páginas las arman como cierres sobre la sesión de la petición.
type Persistencia struct {
	Leer    func() []byte
	Guardar func([]byte) error
	Limpiar func() error
}

// Gateway es la única operación remota que dispara el carrito
type Gateway interface {
	CreateReservation(ctx context.Context, draft any) (api.Registro, error)
}

// Reserva es el borrador que se envía al backend al finalizar la compra
type Reserva struct {
	ClientDNI         string        `json:"client_dni"`
	ReservationStatus string        `json:"reservation_status"`
	PaymentDate       string        `json:"payment_date"`
	DeliveryDate      string        `json:"delivery_date"`
	Items             []ReservaItem `json:"items"`
}

type ReservaItem struct {
	ProductCode     any `json:"product_code"`
	Quantity        int `json:"quantity"`
	PendingQuantity int `json:"pending_quantity"`
}

// Carrito es la lista en memoria respaldada por la persistencia de sesión
type Carrito struct {
	items []Item
	p     Persistencia
}

// Cargar rehidrata el carrito desde la sesión. Lo persistido reemplaza
// cualquier estado previo; un carrito ilegible se trata como vacío.
func Cargar(p Persistencia) *Carrito {
	c := &Carrito{p: p}
	if data := p.Leer(); len(data) > 0 {
		var items []Item
		if err := json.Unmarshal(data, &items); err == nil {
			c.items = items
		}
	}
	return c
}

// Items devuelve los renglones en su orden de inserción
func (c *Carrito) Items() []Item {
	return c.items
}

// Vacio indica si no hay renglones
func (c *Carrito) Vacio() bool {
	return len(c.items) == 0
}

// Agregar suma el producto al carrito: si ya existe un renglón con el
// mismo id se acumula la cantidad, si no se agrega uno nuevo con todos
// los campos del producto.
func (c *Carrito) Agregar(producto api.Registro, cantidad int) error {
	if cantidad < 1 {
		cantidad = 1
	}
	id := producto.ID()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Cantidad += cantidad
			return c.persistir()
		}
	}
	c.items = append(c.items, desdeProducto(producto, cantidad))
	return c.persistir()
}

// Quitar elimina el renglón con ese id
func (c *Carrito) Quitar(id string) error {
	filtrados := c.items[:0]
	for _, item := range c.items {
		if item.ID != id {
			filtrados = append(filtrados, item)
		}
	}
	c.items = filtrados
	return c.persistir()
}

// CambiarCantidad reemplaza la cantidad de un renglón. Un valor que no
// sea un entero positivo se descarta en silencio y el renglón conserva
// su cantidad anterior.
func (c *Carrito) CambiarCantidad(id, crudo string) error {
	cantidad, err := strconv.Atoi(crudo)
	if err != nil || cantidad < 1 {
		return nil
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Cantidad = cantidad
			return c.persistir()
		}
	}
	return nil
}

// Total es la suma de precio unitario por cantidad de cada renglón,
// calculada en cada llamada
func (c *Carrito) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.PrecioUnitario * float64(item.Cantidad)
	}
	return total
}

// ArmarReserva construye el borrador de reserva con las fechas de hoy y
// un renglón por producto del carrito
func (c *Carrito) ArmarReserva(dni string) Reserva {
	hoy := time.Now().Format("2006-01-02")
	r := Reserva{
		ClientDNI:         dni,
		ReservationStatus: "pending",
		PaymentDate:       hoy,
		DeliveryDate:      hoy,
	}
	for _, item := range c.items {
		r.Items = append(r.Items, ReservaItem{
			ProductCode:     idJSON(item.ID),
			Quantity:        item.Cantidad,
			PendingQuantity: 0,
		})
	}
	return r
}

// Finalizar valida el DNI, envía la reserva y, solo si el backend la
// aceptó, vacía el carrito en memoria y en la sesión. Ante cualquier
// error el carrito queda intacto.
func (c *Carrito) Finalizar(ctx context.Context, gw Gateway, dni string) error {
	if len(dni) != 8 {
		return ErrDNIInvalido
	}
	if _, err := gw.CreateReservation(ctx, c.ArmarReserva(dni)); err != nil {
		return err
	}
	c.items = nil
	return c.p.Limpiar()
}

func (c *Carrito) persistir() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return err
	}
	return c.p.Guardar(data)
}

// idJSON conserva el tipo con el que el backend entregó el id: los
// códigos numéricos viajan de vuelta como números
func idJSON(id string) any {
	if n, err := strconv.ParseInt(id, 10, 64); err == nil {
		return n
	}
	return id
}
