// SPDX-License-Identifier: MIT
package arbor

import (
	"github.com/sirupsen/logrus"
)

type (
	// Config defines configuration options shared by a [Tree]'s operations.
	Config struct {
		// Logger for [Tree] messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}
)

var defConfig = DefConfig()

// DefConfig obtains the package's [Tree] default options.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}
