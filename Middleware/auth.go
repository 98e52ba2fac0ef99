package middlewares

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/agroselva/panel_reservas/sesion"
)

type claveContexto int

const claveToken claveContexto = iota

// TokenDeContexto devuelve el token que RequireAuth dejó en el contexto
// de la petición, o cadena vacía en rutas públicas.
func TokenDeContexto(ctx context.Context) string {
	token, _ := ctx.Value(claveToken).(string)
	return token
}

// RequireAuth protege las rutas del panel: sin token en la sesión se
// redirige al login y se descarta el destino solicitado. Si el token es
// un JWT ya vencido se limpia la sesión antes de redirigir, para no
// disparar llamadas a la API condenadas a un 401.
func RequireAuth(store *sesion.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := store.Token(r)
			if token == "" {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			if tokenVencido(token) {
				store.ClearToken(w, r)
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), claveToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenVencido inspecciona el claim exp sin verificar la firma; la firma
// la valida el backend, aquí solo interesa no usar un token muerto.
func tokenVencido(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Token opaco: que decida el backend
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
