package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	config "github.com/pitchlab/gaffer/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no overrides", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Defaults apply", func() {
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.ModelEpochs, ShouldEqual, 1000)
			So(cfg.ModelLearningRate, ShouldAlmostEqual, 0.1, 1e-9)
			So(cfg.RandomSeed, ShouldEqual, 42)
			So(cfg.ExtendedFeatures, ShouldBeTrue)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GAFFER_ADDR", ":7777")
	t.Setenv("GAFFER_MODEL_EPOCHS", "250")

	Convey("Environment variables override defaults", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":7777")
		So(cfg.ModelEpochs, ShouldEqual, 250)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gaffer.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\nlog_level: debug\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GAFFER_CONFIG", path)

	Convey("A YAML file overrides defaults", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":6060")
		So(cfg.LogLevel, ShouldEqual, "debug")
	})
}

func TestLoadFileEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gaffer.yaml")
	if err := os.WriteFile(path, []byte("addr: \":6060\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GAFFER_CONFIG", path)
	t.Setenv("GAFFER_ADDR", ":5050")

	Convey("Environment wins over the file", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":5050")
	})
}

func TestLoadEmptyAddr(t *testing.T) {
	t.Setenv("GAFFER_ADDR", "")

	Convey("An empty listen address is rejected", t, func() {
		_, err := config.Load(context.Background())
		So(err, ShouldWrap, config.ErrEmptyAddr)
	})
}
