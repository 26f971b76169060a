package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Database engines
const (
	EngineMongo    = "mongodb"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

// Upload engines
const (
	UploadDisk = "disk"
	UploadGCS  = "gcs"
)

type (
	Config struct {
		Env      string
		Build    string
		AppName  string
		Debug    bool
		TestMode bool
		WorkDir  string

		RollbarToken   string
		SendgridApiKey string

		Server   ServerConfig
		Database DatabaseConfig
		Uploads  UploadsConfig
		Mail     MailConfig
	}

	ServerConfig struct {
		Host            string
		Port            string
		DebugHost       string
		ShutdownTimeout time.Duration
		BodyLimit       string
		AllowOrigins    []string
	}

	DatabaseConfig struct {
		Engine        string
		URI           string // mongodb connection string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}

	UploadsConfig struct {
		Engine    string
		Dir       string
		MountPath string
		Bucket    string
	}

	MailConfig struct {
		DefaultFromEmail string
		DefaultFromName  string
		Recipients       []string
	}
)

// Address returns the host:port the API listens on.
func (sc ServerConfig) Address() string {
	return sc.Host + ":" + sc.Port
}

func (dc DatabaseConfig) Address() string {
	return dc.Host + ":" + dc.Port
}

// UploadsDir is the absolute directory the disk upload engine writes to.
func (c *Config) UploadsDir() string {
	if filepath.IsAbs(c.Uploads.Dir) {
		return c.Uploads.Dir
	}
	return filepath.Join(c.WorkDir, c.Uploads.Dir)
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.Mail.DefaultFromName, Address: c.Mail.DefaultFromEmail}
}

// MailRecipients parses the configured recipient list, skipping malformed entries.
func (c *Config) MailRecipients() []mail.Address {
	addrs := make([]mail.Address, 0, len(c.Mail.Recipients))
	for _, r := range c.Mail.Recipients {
		r = CleanString(r)
		if r == "" {
			continue
		}
		if addr, err := mail.ParseAddress(r); err == nil {
			addrs = append(addrs, *addr)
		}
	}
	return addrs
}

func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Guru Mantra")
	v.SetDefault("build", "dev")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "5005")
	v.SetDefault("server.debugHost", "localhost:4005")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.bodyLimit", "50M")
	v.SetDefault("server.allowOrigins", []string{"*"})
	v.SetDefault("database.engine", EngineMongo)
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gurumantra")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("uploads.engine", UploadDisk)
	v.SetDefault("uploads.dir", "uploads")
	v.SetDefault("uploads.mountPath", "/uploads")
	v.SetDefault("uploads.bucket", "")
	v.SetDefault("mail.defaultFromEmail", "noreply@localhost")
	v.SetDefault("mail.defaultFromName", "Guru Mantra")
	v.SetDefault("mail.recipients", []string{})
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	// unprefixed variables kept from the node deployment
	_ = v.BindEnv("server.port", env+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.uri", env+"_DATABASE_URI", "MONGODB_URI")
	_ = v.BindEnv("sendgridApiKey", env+"_SENDGRIDAPIKEY", "SENDGRID_API_KEY")
	_ = v.BindEnv("rollbarToken", env+"_ROLLBARTOKEN", "ROLLBAR_TOKEN")
	_ = v.BindEnv("mail.recipients", env+"_MAIL_RECIPIENTS", "MAIL_RECIPIENTS")

	return &Config{
		Env:            env,
		Build:          v.GetString("build"),
		AppName:        v.GetString("appName"),
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		WorkDir:        wd,
		RollbarToken:   v.GetString("rollbarToken"),
		SendgridApiKey: v.GetString("sendgridApiKey"),
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetString("server.port"),
			DebugHost:       v.GetString("server.debugHost"),
			ShutdownTimeout: v.GetDuration("server.shutdownTimeout"),
			BodyLimit:       v.GetString("server.bodyLimit"),
			AllowOrigins:    splitList(v.GetStringSlice("server.allowOrigins")),
		},
		Database: DatabaseConfig{
			Engine:        strings.ToLower(v.GetString("database.engine")),
			URI:           v.GetString("database.uri"),
			Name:          v.GetString("database.name"),
			Host:          v.GetString("database.host"),
			Port:          v.GetString("database.port"),
			User:          v.GetString("database.user"),
			Password:      v.GetString("database.password"),
			AdminUser:     v.GetString("database.adminUser"),
			AdminPassword: v.GetString("database.adminPassword"),
			DisableTLS:    v.GetBool("database.disableTLS"),
		},
		Uploads: UploadsConfig{
			Engine:    strings.ToLower(v.GetString("uploads.engine")),
			Dir:       v.GetString("uploads.dir"),
			MountPath: v.GetString("uploads.mountPath"),
			Bucket:    v.GetString("uploads.bucket"),
		},
		Mail: MailConfig{
			DefaultFromEmail: v.GetString("mail.defaultFromEmail"),
			DefaultFromName:  v.GetString("mail.defaultFromName"),
			Recipients:       splitList(v.GetStringSlice("mail.recipients")),
		},
	}
}

// splitList flattens comma separated env values ("a,b") into separate items.
func splitList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
