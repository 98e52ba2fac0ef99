// Package formulario dibuja el formulario modal genérico: una lista
// declarativa de campos más un juego de valores iniciales producen el
// modal de alta o edición de cualquier recurso del panel.
package formulario

import (
	"embed"
	"html/template"
	"strings"

	"github.com/agroselva/panel_reservas/api"
)

//go:embed formulario.html
var plantillas embed.FS

var tmpl = template.Must(template.ParseFS(plantillas, "formulario.html"))

// Opcion es una entrada de un campo select
type Opcion struct {
	ID     string
	Nombre string
}

// Campo describe un campo editable. Tipo es text, number, date o select.
type Campo struct {
	Nombre    string
	Etiqueta  string
	Tipo      string
	Requerido bool
	Opciones  []Opcion
}

// Formulario es un modal listo para dibujarse: campos, valores ya
// sembrados, la URL que recibe el envío y la que cierra sin guardar
type Formulario struct {
	Accion  string
	Cerrar  string
	Campos  []Campo
	Valores map[string]string
	Error   string
}

// Sembrar construye los valores del formulario desde el registro
// inicial: cada campo toma inicial[nombre] o cadena vacía, y siempre se
// incluye id. Se llama en cada petición que abre el modal, así el
// formulario refleja el registro vigente.
func Sembrar(campos []Campo, inicial api.Registro) map[string]string {
	valores := make(map[string]string, len(campos)+1)
	for _, campo := range campos {
		valores[campo.Nombre] = api.Stringify(inicial[campo.Nombre])
	}
	valores["id"] = api.Stringify(inicial["id"])
	return valores
}

// Nuevo arma el formulario con los valores sembrados del registro inicial
func Nuevo(accion, cerrar string, campos []Campo, inicial api.Registro) Formulario {
	return Formulario{
		Accion:  accion,
		Cerrar:  cerrar,
		Campos:  campos,
		Valores: Sembrar(campos, inicial),
	}
}

// ConValores arma el formulario con valores ya resueltos, por ejemplo
// los que el usuario envió en un intento de guardado fallido
func ConValores(accion, cerrar string, campos []Campo, valores map[string]string) Formulario {
	return Formulario{
		Accion:  accion,
		Cerrar:  cerrar,
		Campos:  campos,
		Valores: valores,
	}
}

// ConError devuelve una copia del formulario con el mensaje de error
// que se muestra encima del cuerpo
func (f Formulario) ConError(mensaje string) Formulario {
	f.Error = mensaje
	return f
}

type campoVista struct {
	Campo
	Valor string
}

type vista struct {
	Accion string
	Cerrar string
	Error  string
	ID     string
	Campos []campoVista
}

// HTML dibuja el modal completo
func (f Formulario) HTML() (template.HTML, error) {
	v := vista{
		Accion: f.Accion,
		Cerrar: f.Cerrar,
		Error:  f.Error,
		ID:     f.Valores["id"],
	}
	for _, campo := range f.Campos {
		v.Campos = append(v.Campos, campoVista{Campo: campo, Valor: f.Valores[campo.Nombre]})
	}

	var sb strings.Builder
	if err := tmpl.ExecuteTemplate(&sb, "formulario", v); err != nil {
		return "", err
	}
	return template.HTML(sb.String()), nil
}
