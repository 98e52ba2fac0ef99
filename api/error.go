package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error conserva el código HTTP que devolvió la API externa para que
// cada página decida cómo traducirlo al usuario.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("la API respondió %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("la API respondió %d", e.Status)
}

// StatusOf devuelve el código HTTP de un error del gateway, o 0 si el
// error no vino de la API (red caída, respuesta ilegible, etc.)
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// DetailOf devuelve el mensaje de detalle extraído del cuerpo, si lo hubo
func DetailOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// errorFromResponse arma un *Error extrayendo el campo detail al estilo
// del backend: puede ser una cadena o, en los 422 de validación, una
// lista de objetos con msg.
func errorFromResponse(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return apiErr
	}

	if envelope.Message != "" {
		apiErr.Detail = envelope.Message
	}
	if len(envelope.Detail) > 0 {
		var texto string
		if err := json.Unmarshal(envelope.Detail, &texto); err == nil {
			apiErr.Detail = texto
			return apiErr
		}
		var lista []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &lista); err == nil && len(lista) > 0 {
			apiErr.Detail = lista[0].Msg
		}
	}
	return apiErr
}
