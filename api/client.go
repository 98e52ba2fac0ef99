package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Registro es un registro genérico tal como lo devuelve la API externa.
// Las páginas solo necesitan leer campos por nombre, el formato exacto
// de cada recurso lo decide el backend.
type Registro map[string]any

// ID devuelve el identificador del registro como cadena
func (r Registro) ID() string {
	return Stringify(r["id"])
}

// Stringify convierte cualquier valor JSON a su representación de texto.
// Los números enteros no llevan decimales aunque lleguen como float64.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Client es el gateway hacia la API REST externa. Todas las operaciones
// del panel pasan por aquí; el cliente no guarda estado propio más allá
// del token que le entrega el callback.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	// Token se consulta antes de cada petición autenticada; recibe el
	// contexto de la petición en curso para leer el token de la sesión
	Token func(ctx context.Context) string
}

func NewClient(baseURL string, token func(ctx context.Context) string) *Client {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    http.DefaultClient,
		Token:   token,
	}
}

// Login autentica contra auth/ con el flujo password y devuelve el access_token
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"auth/", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errorFromResponse(resp)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("respuesta de auth inválida: %w", err)
	}
	return out.AccessToken, nil
}

// List obtiene la colección completa de un recurso (categories, subcategories, products, reservations)
func (c *Client) List(ctx context.Context, resource string) ([]Registro, error) {
	var out []Registro
	if err := c.do(ctx, http.MethodGet, resource+"/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create da de alta un registro del recurso
func (c *Client) Create(ctx context.Context, resource string, body any) (Registro, error) {
	var out Registro
	if err := c.do(ctx, http.MethodPost, resource+"/", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update modifica un registro del recurso
func (c *Client) Update(ctx context.Context, resource, id string, body any) (Registro, error) {
	var out Registro
	if err := c.do(ctx, http.MethodPut, resource+"/"+id+"/", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReservationsByDNI busca las reservas de un cliente por su DNI
func (c *Client) ReservationsByDNI(ctx context.Context, dni string) ([]Registro, error) {
	var out []Registro
	if err := c.do(ctx, http.MethodGet, "reservations/"+dni, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateReservation cambia estado o fechas de una reserva
func (c *Client) UpdateReservation(ctx context.Context, id string, body any) error {
	return c.do(ctx, http.MethodPut, "reservations/"+id, body, nil)
}

// DeleteReservation elimina una reserva
func (c *Client) DeleteReservation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "reservations/"+id, nil, nil)
}

// ReservationItems devuelve la reserva con sus renglones de producto
func (c *Client) ReservationItems(ctx context.Context, id string) (Registro, error) {
	var out Registro
	if err := c.do(ctx, http.MethodGet, "reservations/items/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReservation registra una reserva nueva a partir del borrador del carrito
func (c *Client) CreateReservation(ctx context.Context, draft any) (Registro, error) {
	var out Registro
	if err := c.do(ctx, http.MethodPost, "reservations/", draft, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != nil {
		if tok := c.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("respuesta inválida de %s: %w", path, err)
	}
	return nil
}
