package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bashhack/scriptkit/internal/common"
	"github.com/bashhack/scriptkit/internal/errors"
)

// File is the parsed YAML config file. Known sections are decoded into typed
// fields; every other top-level key lands in Options.
type File struct {
	// Path is the file the values were read from
	Path string `yaml:"-"`

	Mail     MailSection     `yaml:"sendEmail"`
	Telegram TelegramSection `yaml:"telegram"`
	Discord  DiscordSection  `yaml:"discord"`
	Lock     LockSection     `yaml:"lock"`

	// Options holds script-specific keys such as simpleoption or dictoption
	Options map[string]any `yaml:",inline"`
}

// MailSection configures the SMTP relay used by the mail package.
type MailSection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"gmailUsername"`
	Password string `yaml:"gmailPassword"`
	From     string `yaml:"from"`
}

// TelegramSection holds the bot token for Telegram notifications.
type TelegramSection struct {
	Token string `yaml:"token"`
}

// DiscordSection holds the bot token for Discord notifications.
type DiscordSection struct {
	Token string `yaml:"token"`
}

// LockSection supplies lock defaults that flags and environment override.
type LockSection struct {
	Name    string `yaml:"name"`
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// LoadFile reads and parses the YAML config file at path.
// Secret values written as ${VAR} are replaced with the environment value.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConfigError("config", path,
				errors.Wrapf(errors.ErrConfigNotFound, "config file %s not found", path))
		}
		return nil, errors.NewConfigError("config", path, errors.Wrap(err, "failed to read config file"))
	}

	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, errors.NewConfigError("config", path,
			errors.Wrapf(errors.ErrInvalidConfiguration, "failed to parse YAML: %v", err))
	}
	f.Path = path
	f.resolveEnvVars()

	return f, nil
}

// resolveEnvVars substitutes ${VAR} references in credential fields
func (f *File) resolveEnvVars() {
	for _, field := range []*string{
		&f.Mail.Username,
		&f.Mail.Password,
		&f.Telegram.Token,
		&f.Discord.Token,
	} {
		*field = expandEnv(*field)
	}
}

func expandEnv(value string) string {
	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		return os.Getenv(value[2 : len(value)-1])
	}
	return value
}

// Option returns a script-specific top-level value
func (f *File) Option(key string) (any, bool) {
	if f == nil || f.Options == nil {
		return nil, false
	}
	v, ok := f.Options[key]
	return v, ok
}

// Keys returns every top-level key present in the file, sorted.
func (f *File) Keys() []string {
	var keys []string
	if f.Mail != (MailSection{}) {
		keys = append(keys, "sendEmail")
	}
	if f.Telegram != (TelegramSection{}) {
		keys = append(keys, "telegram")
	}
	if f.Discord != (DiscordSection{}) {
		keys = append(keys, "discord")
	}
	if f.Lock != (LockSection{}) {
		keys = append(keys, "lock")
	}
	for k := range f.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LogTo writes one info record per top-level key. Credentials are masked.
func (f *File) LogTo(log common.Logger) {
	for _, key := range f.Keys() {
		log.Info("config[%s]:%s.", key, f.describe(key))
	}
}

func (f *File) describe(key string) string {
	switch key {
	case "sendEmail":
		m := f.Mail
		return fmt.Sprintf("{host:%s port:%d gmailUsername:%s gmailPassword:%s from:%s}",
			m.Host, m.Port, m.Username, mask(m.Password), m.From)
	case "telegram":
		return fmt.Sprintf("{token:%s}", mask(f.Telegram.Token))
	case "discord":
		return fmt.Sprintf("{token:%s}", mask(f.Discord.Token))
	case "lock":
		return fmt.Sprintf("{name:%s backend:%s dir:%s}", f.Lock.Name, f.Lock.Backend, f.Lock.Dir)
	default:
		return fmt.Sprintf("%v", f.Options[key])
	}
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "****"
}
