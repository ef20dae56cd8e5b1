// Package config reads the bridge settings from the environment, after
// loading an optional .env file.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"whatsapp-media-bridge/internal/apperr"
	"whatsapp-media-bridge/internal/gauth"
)

// Defaults for optional variables.
const (
	DefaultPort             = 3000
	DefaultSessionDB        = "data/session.db"
	DefaultAliasFile        = "data/aliases.txt"
	DefaultTimezone         = "America/Sao_Paulo"
	DefaultCloudinaryFolder = "whatsapp_trello_anexos"
	DefaultCredentialsFile  = "credentials.json"
)

// Trello holds the API credentials and the board and list new cards go to.
type Trello struct {
	APIKey    string
	AuthToken string
	BoardID   string
	ListID    string
}

// Cloudinary holds the upload credentials and default folder.
type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Google holds the service account and the Drive folder and spreadsheet IDs.
type Google struct {
	Credentials   gauth.Credentials
	DriveFolderID string
	SpreadsheetID string
}

// Config is the full set of bridge settings. Each command validates only the
// sections it uses.
type Config struct {
	TargetGroupID  string
	OperatorJID    string
	Port           int
	AllowedOrigins []string
	SessionDB      string
	AliasFile      string
	Location       *time.Location

	Trello     Trello
	Cloudinary Cloudinary
	Google     Google
}

// LoadEnv loads .env from the working directory when present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Error loading .env file, assuming environment variables are set.")
	}
}

// FromEnv builds a Config from environment variables.
func FromEnv() (*Config, error) {
	cfg := &Config{
		TargetGroupID:  env("TARGET_GROUP_ID", ""),
		OperatorJID:    env("OPERATOR_JID", ""),
		AllowedOrigins: SplitList(os.Getenv("ALLOWED_ORIGINS")),
		SessionDB:      env("SESSION_DB", DefaultSessionDB),
		AliasFile:      env("ALIAS_FILE", DefaultAliasFile),
		Trello: Trello{
			APIKey:    env("TRELLO_API_KEY", ""),
			AuthToken: env("TRELLO_AUTH_TOKEN", ""),
			BoardID:   env("TRELLO_BOARD_ID", ""),
			ListID:    env("TRELLO_LIST_ID", ""),
		},
		Cloudinary: Cloudinary{
			CloudName: env("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    env("CLOUDINARY_API_KEY", ""),
			APISecret: env("CLOUDINARY_API_SECRET", ""),
			Folder:    env("CLOUDINARY_FOLDER", DefaultCloudinaryFolder),
		},
		Google: Google{
			Credentials: gauth.Credentials{
				ClientEmail: env("GOOGLE_CLIENT_EMAIL", ""),
				PrivateKey:  env("GOOGLE_PRIVATE_KEY", ""),
				File:        env("GOOGLE_CREDENTIALS_FILE", DefaultCredentialsFile),
			},
			DriveFolderID: env("GOOGLE_DRIVE_FOLDER_ID", ""),
			SpreadsheetID: env("GOOGLE_SPREADSHEET_ID", ""),
		},
	}

	port, err := strconv.Atoi(env("PORT", strconv.Itoa(DefaultPort)))
	if err != nil || port <= 0 || port > 65535 {
		return nil, apperr.Validation("PORT", fmt.Sprintf("%q is not a valid port", os.Getenv("PORT")))
	}
	cfg.Port = port

	tz := env("TIMEZONE", DefaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, apperr.Validation("TIMEZONE", err.Error())
	}
	cfg.Location = loc

	return cfg, nil
}

// Addr is the status server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RequireGroup checks the settings shared by the WhatsApp flows.
func (c *Config) RequireGroup(withOperator bool) error {
	if c.TargetGroupID == "" {
		return apperr.Validation("TARGET_GROUP_ID", "must be set, run the groups command to find it")
	}
	if withOperator && c.OperatorJID == "" {
		return apperr.Validation("OPERATOR_JID", "must be set")
	}
	return nil
}

// RequireTrello checks the Trello credentials and target list.
func (c *Config) RequireTrello() error {
	return requireVars("trello", map[string]string{
		"TRELLO_API_KEY":    c.Trello.APIKey,
		"TRELLO_AUTH_TOKEN": c.Trello.AuthToken,
		"TRELLO_BOARD_ID":   c.Trello.BoardID,
		"TRELLO_LIST_ID":    c.Trello.ListID,
	})
}

// RequireCloudinary checks the Cloudinary credentials.
func (c *Config) RequireCloudinary() error {
	return requireVars("cloudinary", map[string]string{
		"CLOUDINARY_CLOUD_NAME": c.Cloudinary.CloudName,
		"CLOUDINARY_API_KEY":    c.Cloudinary.APIKey,
		"CLOUDINARY_API_SECRET": c.Cloudinary.APISecret,
	})
}

// RequireGoogle checks the Google identifiers a command needs. Credentials
// themselves are checked when the token source is built.
func (c *Config) RequireGoogle(driveFolder, spreadsheet bool) error {
	vars := map[string]string{}
	if driveFolder {
		vars["GOOGLE_DRIVE_FOLDER_ID"] = c.Google.DriveFolderID
	}
	if spreadsheet {
		vars["GOOGLE_SPREADSHEET_ID"] = c.Google.SpreadsheetID
	}
	return requireVars("google", vars)
}

func requireVars(service string, vars map[string]string) error {
	var missing []string
	for name, value := range vars {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return apperr.Auth(service, fmt.Errorf("missing %s", strings.Join(missing, ", ")))
}

// SplitList splits a comma separated variable, dropping empty items.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func env(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}
