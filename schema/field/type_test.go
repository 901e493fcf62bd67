package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen/schema/field"
)

func TestTypeInfo(t *testing.T) {
	tests := []struct {
		name     string
		typ      field.Type
		numeric  bool
		valid    bool
		constNam string
		goName   string
	}{
		{"TypeBool", field.TypeBool, false, true, "TypeBool", "bool"},
		{"TypeInt", field.TypeInt, true, true, "TypeInt", "int"},
		{"TypeInt64", field.TypeInt64, true, true, "TypeInt64", "int64"},
		{"TypeUint16", field.TypeUint16, true, true, "TypeUint16", "uint16"},
		{"TypeFloat64", field.TypeFloat64, true, true, "TypeFloat64", "float64"},
		{"TypeString", field.TypeString, false, true, "TypeString", "string"},
		{"TypeTime", field.TypeTime, false, true, "TypeTime", "time.Time"},
		{"TypeBytes", field.TypeBytes, false, true, "TypeBytes", "[]byte"},
		{"TypeUUID", field.TypeUUID, false, true, "TypeUUID", "uuid.UUID"},
		{"TypeInvalid", field.TypeInvalid, false, false, "invalid", "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.numeric, tt.typ.Numeric(), "Numeric() mismatch")
			assert.Equal(t, tt.valid, tt.typ.Valid(), "Valid() mismatch")
			assert.Equal(t, tt.constNam, tt.typ.ConstName(), "ConstName() mismatch")
			assert.Equal(t, tt.goName, tt.typ.String(), "String() mismatch")
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  field.Type
	}{
		{"string", field.TypeString},
		{"String", field.TypeString},
		{"u16", field.TypeInvalid},
		{"uint16", field.TypeUint16},
		{"time.Time", field.TypeTime},
		{"time", field.TypeTime},
		{"uuid", field.TypeUUID},
		{"[]byte", field.TypeBytes},
		{" float32 ", field.TypeFloat32},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := field.ParseType(tt.input)
			if tt.want == field.TypeInvalid {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeText(t *testing.T) {
	var typ field.Type
	require.NoError(t, typ.UnmarshalText([]byte("int64")))
	assert.Equal(t, field.TypeInt64, typ)

	b, err := field.TypeUUID.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "uuid.UUID", string(b))

	_, err = field.TypeInvalid.MarshalText()
	assert.Error(t, err)
}

func TestTypePkgPath(t *testing.T) {
	assert.Equal(t, "time", field.TypeTime.PkgPath())
	assert.Equal(t, "github.com/google/uuid", field.TypeUUID.PkgPath())
	assert.Empty(t, field.TypeString.PkgPath())
}
