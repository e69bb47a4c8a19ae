package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/pkg/jwt"
)

const secret = "clave-de-prueba"

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate(secret, "almacen-api", 60, jwt.TokenInput{
		UserID: "u1", Email: "ana@obra.mx", Role: "Editor", SessionVersion: 3,
	})
	require.NoError(t, err)

	claims, err := jwt.Parse(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "ana@obra.mx", claims.Email)
	assert.Equal(t, "Editor", claims.Role)
	assert.Equal(t, 3, claims.SessionVersion)
	assert.Equal(t, "almacen-api", claims.Issuer)
}

func TestParse_Rechazos(t *testing.T) {
	token, err := jwt.Generate(secret, "almacen-api", 60, jwt.TokenInput{UserID: "u1"})
	require.NoError(t, err)

	_, err = jwt.Parse("otra-clave", token)
	assert.Error(t, err, "firma con otro secreto")

	expired, err := jwt.Generate(secret, "almacen-api", -5, jwt.TokenInput{UserID: "u1"})
	require.NoError(t, err)
	_, err = jwt.Parse(secret, expired)
	assert.Error(t, err, "token expirado")

	_, err = jwt.Parse(secret, "no-es-un-jwt")
	assert.Error(t, err)

	_, err = jwt.Parse("", token)
	assert.Error(t, err)
	_, err = jwt.Generate("", "x", 60, jwt.TokenInput{})
	assert.Error(t, err)
}
