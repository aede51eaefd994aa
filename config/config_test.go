package config_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"sarisari/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	c := qt.New(t)

	// No config file in the test working directory: defaults apply.
	cfg, err := config.LoadConfig()
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.DatabasePath, qt.Equals, "./store_v2.db")
	c.Assert(cfg.ListenAddr, qt.Equals, ":8080")
	c.Assert(cfg.ExpiryThresholdDays, qt.Equals, 7)
}

func TestGetConfigNeverReturnsZeroValues(t *testing.T) {
	c := qt.New(t)

	cfg := config.GetConfig()
	c.Assert(cfg.DatabasePath, qt.Not(qt.Equals), "")
	c.Assert(cfg.ListenAddr, qt.Not(qt.Equals), "")
	c.Assert(cfg.ExpiryThresholdDays > 0, qt.IsTrue)
}
