package sesion

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"
)

const (
	sesionAuth    = "agroselva_sesion"
	sesionCarrito = "agroselva_carrito"

	claveToken   = "access_token"
	claveCarrito = "cart"

	// El token del backend vive días; el carrito muere con la pestaña
	vidaToken = 60 * 60 * 24 * 7
)

// Aviso es una notificación transitoria que la siguiente página muestra
// y descarta (tipo "exito" o "error")
type Aviso struct {
	Tipo    string
	Mensaje string
}

func init() {
	gob.Register(Aviso{})
}

// Store es el servicio de sesión del panel: guarda el token de acceso,
// el carrito serializado y los avisos pendientes en cookies firmadas y
// cifradas. Es el único punto de acceso a ese estado.
type Store struct {
	cookies *sessions.CookieStore
}

// NewStore deriva las llaves de firma y cifrado a partir del secreto
// configurado y arma el almacén de cookies.
func NewStore(secret string) *Store {
	authKey := pbkdf2.Key([]byte(secret), []byte("agroselva-auth"), 4096, 32, sha256.New)
	encKey := pbkdf2.Key([]byte(secret), []byte("agroselva-enc"), 4096, 32, sha256.New)

	cs := sessions.NewCookieStore(authKey, encKey)
	cs.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Token devuelve el token de acceso guardado, o cadena vacía si no hay sesión
func (s *Store) Token(r *http.Request) string {
	sess, err := s.cookies.Get(r, sesionAuth)
	if err != nil {
		return ""
	}
	tok, _ := sess.Values[claveToken].(string)
	return tok
}

// SetToken guarda el token tras un login exitoso
func (s *Store) SetToken(w http.ResponseWriter, r *http.Request, token string) error {
	sess, _ := s.cookies.Get(r, sesionAuth)
	sess.Options.MaxAge = vidaToken
	sess.Values[claveToken] = token
	return sess.Save(r, w)
}

// ClearToken borra el token (logout o sesión expirada)
func (s *Store) ClearToken(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, sesionAuth)
	delete(sess.Values, claveToken)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// CartJSON devuelve el arreglo de renglones serializado, o nil si no hay carrito
func (s *Store) CartJSON(r *http.Request) []byte {
	sess, err := s.cookies.Get(r, sesionCarrito)
	if err != nil {
		return nil
	}
	data, _ := sess.Values[claveCarrito].(string)
	if data == "" {
		return nil
	}
	return []byte(data)
}

// SetCartJSON persiste el arreglo completo de renglones del carrito
func (s *Store) SetCartJSON(w http.ResponseWriter, r *http.Request, data []byte) error {
	sess, _ := s.cookies.Get(r, sesionCarrito)
	// MaxAge 0: cookie de sesión de navegador, igual que sessionStorage
	sess.Options.MaxAge = 0
	sess.Values[claveCarrito] = string(data)
	return sess.Save(r, w)
}

// ClearCart elimina el carrito persistido
func (s *Store) ClearCart(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, sesionCarrito)
	delete(sess.Values, claveCarrito)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// AddAviso encola una notificación para la próxima página
func (s *Store) AddAviso(w http.ResponseWriter, r *http.Request, tipo, mensaje string) error {
	sess, _ := s.cookies.Get(r, sesionAuth)
	sess.AddFlash(Aviso{Tipo: tipo, Mensaje: mensaje})
	return sess.Save(r, w)
}

// Avisos devuelve y descarta las notificaciones pendientes
func (s *Store) Avisos(w http.ResponseWriter, r *http.Request) []Aviso {
	sess, err := s.cookies.Get(r, sesionAuth)
	if err != nil {
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	sess.Save(r, w)

	avisos := make([]Aviso, 0, len(flashes))
	for _, f := range flashes {
		if a, ok := f.(Aviso); ok {
			avisos = append(avisos, a)
		}
	}
	return avisos
}
