package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/logger"
)

func TestNew_ProductionEmiteJSONConAppYTimestamp(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:    "production",
		Level:  "info",
		Name:   "almacen-api",
		Writer: &buf,
	})

	log.Info().Str("env", "production").Msg("iniciando aplicación")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), "en production la salida debe ser JSON")
	assert.Equal(t, "almacen-api", line["app"], "toda línea lleva el nombre de la app")
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "iniciando aplicación", line["message"])
	assert.NotEmpty(t, line["time"])
}

func TestNew_NivelFiltraEventosMenores(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:    "production",
		Level:  "error",
		Writer: &buf,
	})

	log.Info().Msg("no debe salir")
	assert.Zero(t, buf.Len(), "con nivel error los info se descartan")

	log.Error().Msg("sí debe salir")
	assert.Contains(t, buf.String(), "sí debe salir")
}

func TestNew_NivelDesconocidoCaeEnInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:    "production",
		Level:  "verboso",
		Writer: &buf,
	})

	log.Debug().Msg("debug descartado")
	assert.Zero(t, buf.Len())

	log.Info().Msg("info visible")
	assert.Contains(t, buf.String(), "info visible")
}

func TestNew_DevelopmentUsaConsola(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{
		Env:    "development",
		Level:  "info",
		Writer: &buf,
	})

	log.Info().Msg("salida legible")

	out := buf.String()
	assert.Contains(t, out, "salida legible")
	assert.False(t, json.Valid(buf.Bytes()), "en development la salida es consola, no JSON")
}
