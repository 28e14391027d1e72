package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleGestor.Valid())
	assert.True(t, RoleOperador.Valid())
	assert.False(t, Role("admin").Valid(), "roles are case sensitive on the wire")
	assert.False(t, Role("").Valid())
}

func TestTimestampDecodesBackendVariants(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"rfc3339", `"2026-08-27T14:03:11Z"`},
		{"rfc3339 with offset", `"2026-08-27T14:03:11-03:00"`},
		{"naive with microseconds", `"2026-08-27T14:03:11.120394"`},
		{"naive without fraction", `"2026-08-27T14:03:11"`},
		{"date only", `"2026-08-27"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(tc.json), &ts))
			assert.Equal(t, 2026, ts.Year())
			assert.Equal(t, 27, ts.Day())
		})
	}
}

func TestTimestampNullAndGarbage(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestCreatePromotorParamsValidate(t *testing.T) {
	valid := CreatePromotorParams{
		Nome:     "João Silva",
		Email:    "joao@mustafa.app",
		Password: "secret1",
		Perfil:   RoleOperador,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreatePromotorParams)
	}{
		{"short name", func(p *CreatePromotorParams) { p.Nome = "Jo" }},
		{"missing email", func(p *CreatePromotorParams) { p.Email = "" }},
		{"short password", func(p *CreatePromotorParams) { p.Password = "12345" }},
		{"bad perfil", func(p *CreatePromotorParams) { p.Perfil = "SUPERADMIN" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mutate(&params)
			err := params.Validate()
			require.Error(t, err)
			assert.Equal(t, EINVALID, ErrorCode(err))
		})
	}
}

func TestUpdatePromotorParamsOmitsNilFields(t *testing.T) {
	nome := "Maria"
	payload, err := json.Marshal(UpdatePromotorParams{Nome: &nome})
	require.NoError(t, err)
	assert.JSONEq(t, `{"nome":"Maria"}`, string(payload))
}

func TestContratoUploadValidate(t *testing.T) {
	valid := ContratoUpload{
		NomePromotor: "João Silva",
		CPFPromotor:  "123.456.789-00",
		Filename:     "contrato.pdf",
		ContentType:  "application/pdf",
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.ContentType = "image/gif"
	err := bad.Validate()
	require.Error(t, err)
	assert.Equal(t, EINVALID, ErrorCode(err))
}

func TestErrorMessageHidesInternals(t *testing.T) {
	internal := Internal(assert.AnError, "backend.KPIs", "decode blew up: field 7 mismatch")
	assert.Equal(t, "An internal error occurred. Please try again later.", ErrorMessage(internal))

	invalid := Invalid("Handler.Login", "Email and password are required")
	assert.Equal(t, "Email and password are required", ErrorMessage(invalid))
}
