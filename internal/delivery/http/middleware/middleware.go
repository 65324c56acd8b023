package middleware

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type MiddlewareConfig struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

// Middleware holds what the route guards need: the logger and api.* settings
type Middleware struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

func NewMiddleware(c *MiddlewareConfig) *Middleware {
	if c == nil {
		return &Middleware{Log: logrus.StandardLogger()}
	}

	log := c.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Middleware{
		Log:    log,
		Config: c.Config,
	}
}
