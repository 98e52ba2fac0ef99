package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
)

type Configuration struct {
	APIBaseURL    string
	SessionSecret string
	Port          int
}

var Config Configuration

// LoadConfig carga la configuración desde variables de entorno
func LoadConfig() error {
	// Intentar cargar el archivo .env
	if err := loadEnvFile(".env"); err != nil {
		log.Printf("Advertencia: %v", err)
	}

	var missingVars []string

	Config.APIBaseURL = os.Getenv("API_BASE_URL")
	if Config.APIBaseURL == "" {
		missingVars = append(missingVars, "API_BASE_URL")
	}

	Config.SessionSecret = os.Getenv("SESSION_SECRET")
	if Config.SessionSecret == "" {
		missingVars = append(missingVars, "SESSION_SECRET")
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		Config.Port = 8080
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("PORT no es un número válido: %w", err)
		}
		Config.Port = port
	}

	// Verificar si faltan variables de entorno
	if len(missingVars) > 0 {
		return fmt.Errorf("faltan las siguientes variables de entorno: %s", strings.Join(missingVars, ", "))
	}

	// El gateway arma las URLs concatenando rutas relativas
	if !strings.HasSuffix(Config.APIBaseURL, "/") {
		Config.APIBaseURL += "/"
	}

	return nil
}

// loadEnvFile carga variables desde un archivo .env
func loadEnvFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("no se pudo leer el archivo %s: %w", filename, err)
	}

	lines := strings.Split(string(data), "\n")
	for _, line := range lines {
		// Ignorar comentarios y líneas vacías
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Dividir por el primer signo igual
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// No sobrescribir si ya existe
		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}

	return nil
}

// ListenAddr devuelve la dirección en la que escucha el servidor
func ListenAddr() string {
	return fmt.Sprintf(":%d", Config.Port)
}
