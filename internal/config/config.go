package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	Pipedrive Pipedrive `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	DealSync  DealSync  `mapstructure:",squash"`
	Redis     Redis     `mapstructure:",squash"`
	SecretKey string    `mapstructure:"secret_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Pipedrive struct {
	OAuthBaseURL   string        `mapstructure:"pipedrive_oauth_base_url"`
	ClientID       string        `mapstructure:"pipedrive_client_id"`
	ClientSecret   string        `mapstructure:"pipedrive_client_secret"`
	RedirectURL    string        `mapstructure:"pipedrive_redirect_url"`
	RequestTimeout time.Duration `mapstructure:"pipedrive_request_timeout"`
	PageLimit      int           `mapstructure:"pipedrive_page_limit"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// DealSync controla o agendador e o throttle da sincronização de deals.
// ThrottleInterval é o intervalo mínimo entre duas sincronizações da mesma
// organização quando a execução não é forçada.
type DealSync struct {
	CronSchedule     string        `mapstructure:"deal_sync_cron"`
	ThrottleInterval time.Duration `mapstructure:"deal_sync_throttle_interval"`
	MaxConcurrentOrg int           `mapstructure:"deal_sync_max_concurrent_orgs"`
	Enabled          bool          `mapstructure:"deal_sync_enabled"`
}

// Redis habilita o lock consultivo por organização em volta da sincronização.
// Com Addr vazio o lock vira no-op e o throttle por tempo segue sozinho.
type Redis struct {
	Addr     string `mapstructure:"redis_addr"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/commission")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("PIPEDRIVE_OAUTH_BASE_URL", "https://oauth.pipedrive.com")
	viper.SetDefault("PIPEDRIVE_CLIENT_ID", "your_client_id")
	viper.SetDefault("PIPEDRIVE_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("PIPEDRIVE_REDIRECT_URL", "http://localhost:8000/v1/integrations/pipedrive/callback")
	viper.SetDefault("PIPEDRIVE_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("PIPEDRIVE_PAGE_LIMIT", 100)

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	// Defaults para sincronização de deals
	viper.SetDefault("DEAL_SYNC_CRON", "*/30 * * * *")    // A cada 30 minutos
	viper.SetDefault("DEAL_SYNC_THROTTLE_INTERVAL", "2m") // Intervalo mínimo por organização
	viper.SetDefault("DEAL_SYNC_MAX_CONCURRENT_ORGS", 3)  // Organizações sincronizando em paralelo
	viper.SetDefault("DEAL_SYNC_ENABLED", false)          // Habilitar sincronização agendada

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOG_LEVEL", "debug")
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
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
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
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
