package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Reddit    Reddit    `mapstructure:",squash"`
	Render    Render    `mapstructure:",squash"`
	Warehouse Warehouse `mapstructure:",squash"`
	Sync      Sync      `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Reddit struct {
	BaseURL             string `mapstructure:"reddit_base_url"`
	TokenURL            string `mapstructure:"reddit_token_url"`
	UserAgent           string `mapstructure:"reddit_user_agent"`
	SecretName          string `mapstructure:"reddit_secret_name"`
	RequestDelaySeconds int    `mapstructure:"reddit_request_delay_seconds"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type Warehouse struct {
	Dataset      string `mapstructure:"warehouse_dataset"`
	Table        string `mapstructure:"warehouse_table"`
	StagingTable string `mapstructure:"warehouse_staging_table"`
}

type Sync struct {
	DefaultStartDate string `mapstructure:"sync_default_start_date"`
}

func SetDefaults() {
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/warehouse")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REDDIT_BASE_URL", "https://ads-api.reddit.com/api/v2.0")
	viper.SetDefault("REDDIT_TOKEN_URL", "https://www.reddit.com/api/v1/access_token")
	viper.SetDefault("REDDIT_USER_AGENT", "Turing Data Extraction")
	viper.SetDefault("REDDIT_SECRET_NAME", "reddit_secret")
	viper.SetDefault("REDDIT_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre requisições

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("WAREHOUSE_DATASET", "reddit")
	viper.SetDefault("WAREHOUSE_TABLE", "redditads")
	viper.SetDefault("WAREHOUSE_STAGING_TABLE", "redditads_tmp")

	viper.SetDefault("SYNC_DEFAULT_START_DATE", "2021-03-01")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Debug("Arquivo .env carregado de:", location)
			return
		}
	}
}
