package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/viper"
)

// Credentials is the user/password pair used to log in to a mail server.
type Credentials struct {
	User string `mapstructure:"user" json:"user"`
	Pass string `mapstructure:"pass" json:"pass"`
}

// Endpoint describes one remote mail server.
type Endpoint struct {
	Host string      `mapstructure:"host" json:"host"`
	Port int         `mapstructure:"port" json:"port"`
	Auth Credentials `mapstructure:"auth" json:"auth"`
	// TLS selects an implicit TLS connection instead of plaintext.
	TLS bool `mapstructure:"tls" json:"tls"`
}

// Address returns host:port for dialing.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

// ServerInfo holds the connection parameters for the retrieval (IMAP) and
// dispatch (SMTP) servers. It is read once at startup and never mutated.
type ServerInfo struct {
	SMTP Endpoint `mapstructure:"smtp" json:"smtp"`
	IMAP Endpoint `mapstructure:"imap" json:"imap"`
}

// LoadServerInfo reads the server info JSON document at path.
func LoadServerInfo(path string) (*ServerInfo, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading server info %s: %w", path, err)
	}

	var info ServerInfo
	if err := v.Unmarshal(&info); err != nil {
		return nil, fmt.Errorf("parsing server info %s: %w", path, err)
	}

	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server info %s: %w", path, err)
	}

	return &info, nil
}

// Validate checks that both endpoints are addressable.
func (s *ServerInfo) Validate() error {
	if err := s.IMAP.validate("imap"); err != nil {
		return err
	}
	return s.SMTP.validate("smtp")
}

func (e Endpoint) validate(name string) error {
	if e.Host == "" {
		return fmt.Errorf("%s.host is required", name)
	}
	if e.Port < 1 || e.Port > 65535 {
		return fmt.Errorf("%s.port is not a valid port number: %d", name, e.Port)
	}
	return nil
}
