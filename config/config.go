package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv     string `mapstructure:"APP_ENV"`
	HTTPPort   string `mapstructure:"HTTP_PORT"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	RedisAddr  string `mapstructure:"REDIS_ADDR"`

	SessionSecret string `mapstructure:"SESSION_SECRET"`
	AdminAPIKey   string `mapstructure:"ADMIN_API_KEY"`
	FrontendURL   string `mapstructure:"FRONTEND_URL"`

	S3Key      string `mapstructure:"S3_KEY"`
	S3Secret   string `mapstructure:"S3_SECRET"`
	S3Region   string `mapstructure:"S3_REGION"`
	S3Bucket   string `mapstructure:"S3_BUCKET"`
	S3Endpoint string `mapstructure:"S3_ENDPOINT"`

	// Размер статичной карты кампуса в пикселях (для валидации координат)
	MapWidth  float64 `mapstructure:"MAP_WIDTH"`
	MapHeight float64 `mapstructure:"MAP_HEIGHT"`
}

func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	// ВАЖНО: Явно биндим переменные, чтобы Viper их видел без файла
	viper.BindEnv("APP_ENV")
	viper.BindEnv("HTTP_PORT")
	viper.BindEnv("DB_HOST")
	viper.BindEnv("DB_PORT")
	viper.BindEnv("DB_USER")
	viper.BindEnv("DB_PASSWORD")
	viper.BindEnv("DB_NAME")
	viper.BindEnv("REDIS_ADDR")
	viper.BindEnv("SESSION_SECRET")
	viper.BindEnv("ADMIN_API_KEY")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("S3_KEY")
	viper.BindEnv("S3_SECRET")
	viper.BindEnv("S3_REGION")
	viper.BindEnv("S3_BUCKET")
	viper.BindEnv("S3_ENDPOINT")
	viper.BindEnv("MAP_WIDTH")
	viper.BindEnv("MAP_HEIGHT")

	viper.SetDefault("HTTP_PORT", ":8080")
	viper.SetDefault("MAP_WIDTH", 2000)
	viper.SetDefault("MAP_HEIGHT", 1400)

	// Пытаемся прочитать файл, но не умираем, если его нет
	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		// Файла нет? Ну и ладно, работаем на ENV
	}

	err = viper.Unmarshal(&config)
	return
}
