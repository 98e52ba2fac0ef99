package main

import (
	"fmt"
	"log"
	"net/http"

	middlewares "github.com/agroselva/panel_reservas/Middleware"
	"github.com/agroselva/panel_reservas/api"
	"github.com/agroselva/panel_reservas/config"
	"github.com/agroselva/panel_reservas/rutas"
	"github.com/agroselva/panel_reservas/sesion"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Error al cargar la configuración: %v", err)
	}

	store := sesion.NewStore(config.Config.SessionSecret)
	cliente := api.NewClient(config.Config.APIBaseURL, middlewares.TokenDeContexto)

	deps := &rutas.Deps{API: cliente, Sesion: store}

	r := mux.NewRouter()
	setupRoutes(r, deps, store)

	handler := cors.AllowAll().Handler(middlewares.Logging(r))

	fmt.Printf("Panel corriendo en http://0.0.0.0:%d\n", config.Config.Port)
	log.Fatal(http.ListenAndServe(config.ListenAddr(), handler))
}

func setupRoutes(r *mux.Router, deps *rutas.Deps, store *sesion.Store) {
	// Rutas públicas
	r.HandleFunc("/", rutas.PaginaLogin(deps)).Methods("GET")
	r.HandleFunc("/login", rutas.Login(deps)).Methods("POST")
	r.HandleFunc("/logout", rutas.Logout(deps)).Methods("GET")
	r.PathPrefix("/static/").Handler(rutas.Estaticos()).Methods("GET")

	// Protegidas con sesión
	auth := middlewares.RequireAuth(store)
	panel := r.NewRoute().Subrouter()
	panel.Use(auth)

	panel.HandleFunc("/dashboard", rutas.Dashboard(deps)).Methods("GET")

	// Categorías
	panel.HandleFunc("/category", rutas.PaginaCategorias(deps)).Methods("GET")
	panel.HandleFunc("/category/save", rutas.GuardarCategoria(deps)).Methods("POST")
	panel.HandleFunc("/category/{id}/disable", rutas.DeshabilitarCategoria(deps)).Methods("POST")
	panel.HandleFunc("/category/{id}/enable", rutas.HabilitarCategoria(deps)).Methods("POST")

	// Subcategorías
	panel.HandleFunc("/subcategory", rutas.PaginaSubcategorias(deps)).Methods("GET")
	panel.HandleFunc("/subcategory/save", rutas.GuardarSubcategoria(deps)).Methods("POST")
	panel.HandleFunc("/subcategory/{id}/disable", rutas.DeshabilitarSubcategoria(deps)).Methods("POST")
	panel.HandleFunc("/subcategory/{id}/enable", rutas.HabilitarSubcategoria(deps)).Methods("POST")

	// Productos
	panel.HandleFunc("/product", rutas.PaginaProductos(deps)).Methods("GET")
	panel.HandleFunc("/product/save", rutas.GuardarProducto(deps)).Methods("POST")
	panel.HandleFunc("/product/{id}/disable", rutas.DeshabilitarProducto(deps)).Methods("POST")
	panel.HandleFunc("/product/{id}/enable", rutas.HabilitarProducto(deps)).Methods("POST")
	panel.HandleFunc("/product/{id}/cart", rutas.ProductoAlCarrito(deps)).Methods("POST")

	// Carrito y compra
	panel.HandleFunc("/reservation", rutas.PaginaCarrito(deps)).Methods("GET")
	panel.HandleFunc("/reservation/quantity", rutas.CambiarCantidadCarrito(deps)).Methods("POST")
	panel.HandleFunc("/reservation/remove/{id}", rutas.QuitarDelCarrito(deps)).Methods("POST")
	panel.HandleFunc("/reservation/checkout", rutas.Checkout(deps)).Methods("POST")

	// Búsqueda y gestión de reservas
	panel.HandleFunc("/listreservation", rutas.PaginaBuscarReservas(deps)).Methods("GET")
	panel.HandleFunc("/listreservation/{id}/status", rutas.CambiarEstadoReserva(deps)).Methods("POST")
	panel.HandleFunc("/listreservation/{id}/date", rutas.CambiarFechaReserva(deps)).Methods("POST")
	panel.HandleFunc("/listreservation/{id}/delete", rutas.EliminarReserva(deps)).Methods("POST")
	panel.HandleFunc("/reservations/{id}/products", rutas.PaginaDetalleReserva(deps)).Methods("GET")
}
