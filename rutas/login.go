package rutas

import (
	"log"
	"net/http"

	"github.com/agroselva/panel_reservas/api"
)

type datosLogin struct {
	Titulo string
	Error  string
}

// PaginaLogin muestra el formulario de inicio de sesión
func PaginaLogin(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.render(w, "login", datosLogin{Titulo: "Iniciar sesión"})
	}
}

// Login autentica contra la API externa y guarda el token en la sesión
func Login(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			d.render(w, "login", datosLogin{Titulo: "Iniciar sesión", Error: "Datos inválidos"})
			return
		}

		token, err := d.API.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
		if err != nil {
			mensaje := "No se pudo iniciar sesión. Intenta de nuevo."
			if api.StatusOf(err) == http.StatusUnauthorized {
				mensaje = "No autorizado. Verifica tu correo y contraseña."
			} else {
				log.Printf("error de login: %v", err)
			}
			d.render(w, "login", datosLogin{Titulo: "Iniciar sesión", Error: mensaje})
			return
		}

		if err := d.Sesion.SetToken(w, r, token); err != nil {
			log.Printf("no se pudo guardar la sesión: %v", err)
			d.render(w, "login", datosLogin{Titulo: "Iniciar sesión", Error: "No se pudo iniciar la sesión."})
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	}
}

// Logout borra el token y regresa al login
func Logout(d *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Sesion.ClearToken(w, r)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
