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
	App                  App                  `mapstructure:",squash"`
	Server               Server               `mapstructure:",squash"`
	Database             Database             `mapstructure:",squash"`
	Statement            Statement            `mapstructure:",squash"`
	Cache                Cache                `mapstructure:",squash"`
	MonthlyStatementSync MonthlyStatementSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
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

// Statement concentra os três parâmetros de negócio padrão da DRE; podem
// ser sobrescritos por requisição via query string.
type Statement struct {
	SalarioMinimo        float64 `mapstructure:"salario_minimo"`
	HonorarioContador    float64 `mapstructure:"honorario_contador"`
	PercentualFornecedor float64 `mapstructure:"percentual_fornecedor"`
}

type Cache struct {
	TTLSeconds int `mapstructure:"cache_ttl_seconds"`
}

type MonthlyStatementSync struct {
	CronSchedule    string `mapstructure:"monthly_statements_sync_cron"`
	Enabled         bool   `mapstructure:"monthly_statements_sync_enabled"`
	MonthLookBack   int    `mapstructure:"monthly_statements_sync_month_lookback"`
	RetentionMonths int    `mapstructure:"monthly_statements_retention_months"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/vendas")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	// Parâmetros padrão da DRE (salário mínimo nacional vigente, honorário
	// do contador e custo de fornecedor como percentual da receita bruta)
	viper.SetDefault("SALARIO_MINIMO", 1518.00)
	viper.SetDefault("HONORARIO_CONTADOR", 316.00)
	viper.SetDefault("PERCENTUAL_FORNECEDOR", 30.0)

	viper.SetDefault("CACHE_TTL_SECONDS", 600)

	// Defaults para o snapshot mensal de DRE
	viper.SetDefault("MONTHLY_STATEMENTS_SYNC_CRON", "0 5 * * *") // Todos os dias às 5h da manhã
	viper.SetDefault("MONTHLY_STATEMENTS_SYNC_ENABLED", false)
	viper.SetDefault("MONTHLY_STATEMENTS_SYNC_MONTH_LOOKBACK", 1)
	// 0 = manter todos os snapshots
	viper.SetDefault("MONTHLY_STATEMENTS_RETENTION_MONTHS", 0)

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
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
