package carrito

import (
	"encoding/json"

	"github.com/agroselva/panel_reservas/api"
)

// Item es un renglón del carrito. Además de los campos que el carrito
// entiende se conserva el resto del producto tal cual llegó de la API,
// para que sobreviva el viaje por la sesión.
type Item struct {
	ID             string
	Nombre         string
	PrecioUnitario float64
	Cantidad       int
	Extras         map[string]json.RawMessage
}

// Subtotal es el total del renglón
func (i Item) Subtotal() float64 {
	return i.PrecioUnitario * float64(i.Cantidad)
}

func desdeProducto(producto api.Registro, cantidad int) Item {
	item := Item{
		ID:       producto.ID(),
		Nombre:   api.Stringify(producto["name"]),
		Cantidad: cantidad,
	}
	if precio, ok := producto["unit_price"].(float64); ok {
		item.PrecioUnitario = precio
	}
	for campo, valor := range producto {
		switch campo {
		case "id", "name", "unit_price", "quantity":
			continue
		}
		if crudo, err := json.Marshal(valor); err == nil {
			if item.Extras == nil {
				item.Extras = make(map[string]json.RawMessage)
			}
			item.Extras[campo] = crudo
		}
	}
	return item
}

// MarshalJSON aplana el renglón: campos conocidos más los extras del
// producto en un solo objeto
func (i Item) MarshalJSON() ([]byte, error) {
	plano := make(map[string]any, len(i.Extras)+4)
	for campo, crudo := range i.Extras {
		plano[campo] = crudo
	}
	plano["id"] = idJSON(i.ID)
	plano["name"] = i.Nombre
	plano["unit_price"] = i.PrecioUnitario
	plano["quantity"] = i.Cantidad
	return json.Marshal(plano)
}

// UnmarshalJSON separa los campos conocidos y guarda el resto en Extras
func (i *Item) UnmarshalJSON(data []byte) error {
	var crudos map[string]json.RawMessage
	if err := json.Unmarshal(data, &crudos); err != nil {
		return err
	}

	*i = Item{}
	for campo, crudo := range crudos {
		switch campo {
		case "id":
			var v any
			if err := json.Unmarshal(crudo, &v); err != nil {
				return err
			}
			i.ID = api.Stringify(v)
		case "name":
			json.Unmarshal(crudo, &i.Nombre)
		case "unit_price":
			json.Unmarshal(crudo, &i.PrecioUnitario)
		case "quantity":
			json.Unmarshal(crudo, &i.Cantidad)
		default:
			if i.Extras == nil {
				i.Extras = make(map[string]json.RawMessage)
			}
			i.Extras[campo] = crudo
		}
	}
	return nil
}
