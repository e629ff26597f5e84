package configs

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("SHIPPING_FLAT_FEE", "")
	t.Setenv("ORDER_NUMBER_MAX_ATTEMPTS", "")
	t.Setenv("APP_PORT", "")

	env := LoadEnv()

	assert.Equal(t, "4.99", env.ShippingFlatFee.StringFixed(2))
	assert.Equal(t, 3, env.OrderNumberAttempts)
	assert.Equal(t, ":8080", env.Port)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("SHIPPING_FLAT_FEE", "4.990")
	t.Setenv("ORDER_NUMBER_MAX_ATTEMPTS", "5")

	env := LoadEnv()

	assert.Equal(t, "4.99", env.ShippingFlatFee.String())
	assert.Equal(t, 5, env.OrderNumberAttempts)
}

func TestLoadEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SHIPPING_FLAT_FEE", "-1")
	t.Setenv("ORDER_NUMBER_MAX_ATTEMPTS", "zero")

	env := LoadEnv()

	assert.Equal(t, "4.99", env.ShippingFlatFee.StringFixed(2))
	assert.Equal(t, 3, env.OrderNumberAttempts)
}

func TestGenerateAndLoadSessionKeys(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, GenerateSessionKeys(&buf))

	values := map[string]string{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		k, v, ok := strings.Cut(scanner.Text(), "=")
		require.True(t, ok)
		values[k] = v
	}

	keys, err := LoadSessionKeys(ENV{
		AppAuthKey: values["APP_AUTH_KEY"],
		AppEncKey:  values["APP_ENC_KEY"],
		AppCSRFKey: values["APP_CSRF_KEY"],
	})
	require.NoError(t, err)
	assert.Len(t, keys.AuthKey, 64)
	assert.Len(t, keys.EncKey, 32)
	assert.Len(t, keys.CSRFKey, 32)
}

func TestLoadSessionKeys_Missing(t *testing.T) {
	_, err := LoadSessionKeys(ENV{})
	assert.Error(t, err)
}
