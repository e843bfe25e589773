package main

import (
	"fmt"
	"github.com/pelletier/go-toml"
	"os"
)

type config struct {
	Log struct {
		Level string
	}
	Volume struct {
		DrawStyle string
		Bounds    string
	}
	Mesher struct {
		Workers int
	}
	Terrain struct {
		Seed                      int64
		ChunksX, ChunksY, ChunksZ uint32
		BaseHeight                float64
		Amplitude                 float64
		Scale                     float64
		Surface, Filler           uint32
	}
	Preview struct {
		OutputDirectory string
		Scale           int
	}
}

// defaultConfig returns the configuration written when no config file exists yet.
func defaultConfig() config {
	c := config{}
	c.Log.Level = "info"
	c.Volume.DrawStyle = "chunk-by-chunk"
	c.Volume.Bounds = "clamp"
	c.Terrain.Seed = 1
	c.Terrain.ChunksX, c.Terrain.ChunksY, c.Terrain.ChunksZ = 4, 1, 4
	c.Terrain.BaseHeight = 16
	c.Terrain.Amplitude = 8
	c.Terrain.Scale = 48
	c.Terrain.Surface, c.Terrain.Filler = 1, 2
	c.Preview.Scale = 4
	return c
}

// readConfig reads the configuration from the file at path, or creates the file if it does not yet exist.
func readConfig(path string) (config, error) {
	c := defaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("failed encoding default config: %v", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return c, fmt.Errorf("failed creating config: %v", err)
		}
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("error reading config: %v", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("error decoding config: %v", err)
	}
	return c, nil
}
