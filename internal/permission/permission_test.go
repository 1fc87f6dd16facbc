package permission_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "agentrelay/internal/acp"
	_ "agentrelay/internal/legacy"
	_ "agentrelay/internal/native"
	"agentrelay/internal/permission"
	"agentrelay/internal/wire"
)

func TestNativeModes(t *testing.T) {
	modes, err := permission.Modes(wire.ProviderClaude)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "acceptEdits", "plan", "bypassPermissions"}, modes)
}

func TestEnvelopedFamiliesShareExtendedModes(t *testing.T) {
	for _, provider := range []wire.Provider{
		wire.ProviderCodex,
		wire.ProviderGemini,
		wire.ProviderCodexLegacy,
	} {
		modes, err := permission.Modes(provider)
		require.NoError(t, err, "provider %s", provider)
		assert.Contains(t, modes, "read-only")
		assert.Contains(t, modes, "safe-yolo")
		assert.Contains(t, modes, "yolo")
		assert.Contains(t, modes, "default")
	}
}

func TestValidTokenPasses(t *testing.T) {
	assert.NoError(t, permission.Validate(wire.ProviderClaude, "acceptEdits"))
	assert.NoError(t, permission.Validate(wire.ProviderCodex, "yolo"))
	assert.NoError(t, permission.Validate(wire.ProviderGemini, "read-only"))
}

func TestTokenValidityIsPerFamily(t *testing.T) {
	// read-only belongs to the enveloped families, not the native one.
	err := permission.Validate(wire.ProviderClaude, "read-only")
	require.Error(t, err)

	var invalid *permission.InvalidTokenError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, wire.ProviderClaude, invalid.Provider)
	assert.Equal(t, "read-only", invalid.Token)
	assert.Contains(t, invalid.Allowed, "plan")
	assert.Contains(t, err.Error(), "read-only")

	// The enveloped set is a superset of the native one, so the native
	// tokens stay valid there.
	assert.NoError(t, permission.Validate(wire.ProviderCodex, "bypassPermissions"))
}

func TestUnknownProvider(t *testing.T) {
	_, err := permission.Modes(wire.Provider("aider"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, permission.ErrUnknownProvider))

	err = permission.Validate(wire.Provider("aider"), "default")
	assert.True(t, errors.Is(err, permission.ErrUnknownProvider))
}

func TestModesReturnsCopy(t *testing.T) {
	modes, err := permission.Modes(wire.ProviderCodex)
	require.NoError(t, err)
	modes[0] = "tampered"

	again, err := permission.Modes(wire.ProviderCodex)
	require.NoError(t, err)
	assert.NotEqual(t, "tampered", again[0])
}
