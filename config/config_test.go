package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCompleta(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000/api/v1")
	t.Setenv("SESSION_SECRET", "secreto")
	t.Setenv("PORT", "9090")

	require.NoError(t, LoadConfig())
	assert.Equal(t, "http://localhost:8000/api/v1/", Config.APIBaseURL, "la base siempre termina en /")
	assert.Equal(t, "secreto", Config.SessionSecret)
	assert.Equal(t, 9090, Config.Port)
	assert.Equal(t, ":9090", ListenAddr())
}

func TestLoadConfigPuertoPorOmision(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000/")
	t.Setenv("SESSION_SECRET", "secreto")
	t.Setenv("PORT", "")

	require.NoError(t, LoadConfig())
	assert.Equal(t, 8080, Config.Port)
}

func TestLoadConfigReportaVariablesFaltantes(t *testing.T) {
	t.Setenv("API_BASE_URL", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PORT", "")

	err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadConfigPuertoInvalido(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000/")
	t.Setenv("SESSION_SECRET", "secreto")
	t.Setenv("PORT", "ochenta")

	assert.Error(t, LoadConfig())
}

func TestLoadEnvFile(t *testing.T) {
	ruta := filepath.Join(t.TempDir(), ".env")
	contenido := "# comentario\n\nPRUEBA_ENV_A=valor a\nPRUEBA_ENV_B = con espacios \nlinea sin igual\n"
	require.NoError(t, os.WriteFile(ruta, []byte(contenido), 0o600))

	t.Setenv("PRUEBA_ENV_B", "ya definida")
	os.Unsetenv("PRUEBA_ENV_A")
	t.Cleanup(func() { os.Unsetenv("PRUEBA_ENV_A") })

	require.NoError(t, loadEnvFile(ruta))
	assert.Equal(t, "valor a", os.Getenv("PRUEBA_ENV_A"))
	assert.Equal(t, "ya definida", os.Getenv("PRUEBA_ENV_B"), "las variables existentes no se sobrescriben")
}

func TestLoadEnvFileInexistente(t *testing.T) {
	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "no-existe.env")))
}
