package model

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A SQL date column comes back from the driver as time.Time and lands in a
// string field as an RFC3339 timestamp, which no longer parses as an
// operating date. The column must stay varchar so reads return exactly what
// was written.
func TestFechaSePersisteComoVarchar(t *testing.T) {
	for _, tipo := range []reflect.Type{reflect.TypeOf(Cierre{}), reflect.TypeOf(CierreCDE{})} {
		campo, ok := tipo.FieldByName("Fecha")
		require.True(t, ok, tipo.Name())
		etiqueta := campo.Tag.Get("gorm")
		assert.Contains(t, etiqueta, "type:varchar", tipo.Name())
		assert.NotContains(t, etiqueta, "type:date", tipo.Name())
	}
}
