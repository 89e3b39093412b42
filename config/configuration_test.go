package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Configuration {
	return &Configuration{
		Server:   &ServerConfiguration{Port: 3000},
		Database: &DatabaseConfiguration{Type: "pg", DSN: "postgres://localhost/app", UseProcedures: true},
		Behaviour: &BehaviourConfiguration{
			PrimaryKey: "id",
			LogLimit:   100,
		},
		Auth: &AuthConfiguration{},
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateDatabase(t *testing.T) {
	assert := assert.New(t)
	c := validConfig()
	c.Database = nil
	assert.Error(c.Validate())

	c = validConfig()
	c.Database.Type = "mysql"
	assert.Error(c.Validate())

	c = validConfig()
	c.Database.Type = "sqlite"
	assert.Error(c.Validate(), "procedures do not exist in sqlite")

	c.Database.UseProcedures = false
	assert.NoError(c.Validate())
}

func TestValidateBehaviour(t *testing.T) {
	assert := assert.New(t)
	c := validConfig()
	c.Behaviour.PrimaryKey = ""
	assert.Error(c.Validate())

	c = validConfig()
	c.Behaviour.LogLimit = 0
	assert.Error(c.Validate())
}

func TestValidateAuthAlgorithm(t *testing.T) {
	assert := assert.New(t)
	c := validConfig()
	c.Auth.JWTSecret = "super-secret"
	c.Auth.JWTAlg = "RS256"
	assert.Error(c.Validate())

	c.Auth.JWTAlg = "HS256"
	assert.NoError(c.Validate())
}

func TestValidateOptionalSections(t *testing.T) {
	assert := assert.New(t)
	c := validConfig()
	c.ManageEndpoint = &ManageEndpointConfiguration{Enable: true}
	assert.Error(c.Validate())

	c = validConfig()
	c.Redis = &RedisConfiguration{Enable: true, Addr: "localhost:6379"}
	assert.Error(c.Validate())

	c = validConfig()
	c.SMTP = &SMTPConfiguration{Enable: true}
	assert.Error(c.Validate())

	c = validConfig()
	c.Server.CSRFToken = "short"
	assert.Error(c.Validate())
}

func TestRecentWindow(t *testing.T) {
	assert := assert.New(t)
	c := validConfig()
	assert.Equal(24*time.Hour, c.RecentWindow())
	c.Behaviour.RecentWindow = time.Hour
	assert.Equal(time.Hour, c.RecentWindow())
}
