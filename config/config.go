package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Upload   Upload
	Logger   LoggerMode
	CORS     CORS
}

type Server struct {
	Port        string
	Environment string
}

type Database struct {
	DSN string
}

type JWT struct {
	Secret        string
	ExpiredInDays int
}

type Upload struct {
	Dir      string
	MaxBytes int64
}

type LoggerMode struct {
	Level  string
	Format string
}

type CORS struct {
	Origins []string
}

// TokenTTL is the session cookie / token lifetime.
func (j JWT) TokenTTL() time.Duration {
	return time.Duration(j.ExpiredInDays) * 24 * time.Hour
}

// Production reports whether cookies must carry the Secure flag.
func (s Server) Production() bool {
	return s.Environment == "production"
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvPrefix("WHISP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// fall through to defaults + env
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.JWT.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("jwt.expiredindays", 7)
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.maxbytes", 5*1024*1024)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("cors.origins", []string{
		"http://localhost:5173",
		"http://localhost:3000",
		"http://localhost:3001",
	})
}
