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
	App               App               `mapstructure:",squash"`
	Server            Server            `mapstructure:",squash"`
	Database          Database          `mapstructure:",squash"`
	Auth              Auth              `mapstructure:",squash"`
	Mailer            Mailer            `mapstructure:",squash"`
	MetricsRollupSync MetricsRollupSync `mapstructure:",squash"`
	SecretKey         string            `mapstructure:"secret_key"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Mailer struct {
	BaseURL        string `mapstructure:"mailer_base_url"`
	APIKey         string `mapstructure:"mailer_api_key"`
	FromEmail      string `mapstructure:"mailer_from_email"`
	TimeoutSeconds int    `mapstructure:"mailer_timeout_seconds"`
	SMTPHost       string `mapstructure:"mailer_smtp_host"`
	SMTPPort       string `mapstructure:"mailer_smtp_port"`
	SMTPUser       string `mapstructure:"mailer_smtp_user"`
	SMTPPassword   string `mapstructure:"mailer_smtp_password"`
}

type MetricsRollupSync struct {
	CronSchedule  string `mapstructure:"metrics_rollup_sync_cron"`
	LookbackHours int    `mapstructure:"metrics_rollup_sync_lookback_hours"`
	Enabled       bool   `mapstructure:"metrics_rollup_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://app.bizhub.com.br")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/bizhub")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("MAILER_BASE_URL", "https://api.sparkpost.com/api/v1")
	viper.SetDefault("MAILER_API_KEY", "")
	viper.SetDefault("MAILER_FROM_EMAIL", "no-reply@bizhub.local")
	viper.SetDefault("MAILER_TIMEOUT_SECONDS", 30)
	viper.SetDefault("MAILER_SMTP_HOST", "localhost")
	viper.SetDefault("MAILER_SMTP_PORT", "25")
	viper.SetDefault("MAILER_SMTP_USER", "")
	viper.SetDefault("MAILER_SMTP_PASSWORD", "")

	// Defaults para o rollup de métricas
	viper.SetDefault("METRICS_ROLLUP_SYNC_CRON", "0 3 * * *")    // Todos os dias às 3h da manhã
	viper.SetDefault("METRICS_ROLLUP_SYNC_LOOKBACK_HOURS", 24)   // 24 horas de atividades por rodada
	viper.SetDefault("METRICS_ROLLUP_SYNC_ENABLED", false)       // Habilitar rollup de métricas

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
	// Obter diretório atual
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
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
