package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/linskybing/hr-console-go/models"
)

var (
	ServerPort     string
	APIBaseURL     string
	TokenStorePath string
	SampleDataPath string
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")
	APIBaseURL = getEnv("HR_API_BASE_URL", "http://localhost:8000/api")
	TokenStorePath = getEnv("TOKEN_STORE_PATH", ".hr-console/tokens.json")
	SampleDataPath = getEnv("SAMPLE_DATA_PATH", "")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LoadSampleEmployees reads the optional YAML file that overrides the
// built-in degraded-mode dataset. A missing path or unreadable file
// returns nil and the built-in sample applies.
func LoadSampleEmployees() []models.Employee {
	if SampleDataPath == "" {
		return nil
	}

	data, err := os.ReadFile(SampleDataPath)
	if err != nil {
		log.Printf("sample data file %s not readable: %v", SampleDataPath, err)
		return nil
	}

	var raw []map[interface{}]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		log.Printf("sample data file %s not valid YAML: %v", SampleDataPath, err)
		return nil
	}

	employees := make([]models.Employee, 0, len(raw))
	for _, entry := range raw {
		e := models.Employee{}
		for k, v := range entry {
			key, ok := k.(string)
			if !ok {
				continue
			}
			e[key] = v
		}
		employees = append(employees, e)
	}
	if len(employees) == 0 {
		return nil
	}
	return employees
}
