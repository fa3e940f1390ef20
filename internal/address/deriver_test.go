package address

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDeriver() Deriver {
	return NewDeriver(ProgramID, cache.New(5*time.Minute, 10*time.Minute))
}

func TestDeriveIsDeterministic(t *testing.T) {
	d := newTestDeriver()

	seeds := TradeState("listing", "seller", "marketplace", "asset", 1000)

	addr1, salt1, err := d.Derive(seeds)
	require.NoError(t, err)

	addr2, salt2, err := d.Derive(seeds)
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2)
	assert.Equal(t, salt1, salt2)
	assert.Len(t, addr1, 64)
}

func TestDeriveDependsOnEverySeed(t *testing.T) {
	d := newTestDeriver()

	base, _, err := d.Derive(TradeState("listing", "seller", "marketplace", "asset", 1000))
	require.NoError(t, err)

	variants := [][][]byte{
		TradeState("listing", "other", "marketplace", "asset", 1000),
		TradeState("listing", "seller", "other", "asset", 1000),
		TradeState("listing", "seller", "marketplace", "other", 1000),
		TradeState("listing", "seller", "marketplace", "asset", 1001),
		TradeState("bid", "seller", "marketplace", "asset", 1000),
		Escrow("marketplace", "seller"),
	}

	for _, seeds := range variants {
		addr, _, err := d.Derive(seeds)
		require.NoError(t, err)
		assert.NotEqual(t, base, addr)
	}
}

func TestDeriveWithSaltMatchesSearch(t *testing.T) {
	d := newTestDeriver()

	seeds := Escrow("marketplace", "bidder")
	addr, salt, err := d.Derive(seeds)
	require.NoError(t, err)

	assert.Equal(t, addr, d.DeriveWithSalt(seeds, salt))
	assert.True(t, d.Verify(addr, seeds, salt))
}

func TestVerifyRejectsForgedSalt(t *testing.T) {
	d := newTestDeriver()

	seeds := Escrow("marketplace", "bidder")
	addr, salt, err := d.Derive(seeds)
	require.NoError(t, err)

	assert.False(t, d.Verify(addr, seeds, salt-1))
	assert.False(t, d.Verify(addr, Escrow("marketplace", "other"), salt))
}

func TestDifferentProgramsDiverge(t *testing.T) {
	a := NewDeriver("program-a", cache.New(time.Minute, time.Minute))
	b := NewDeriver("program-b", cache.New(time.Minute, time.Minute))

	seeds := Signer()

	addrA, _, err := a.Derive(seeds)
	require.NoError(t, err)

	addrB, _, err := b.Derive(seeds)
	require.NoError(t, err)

	assert.NotEqual(t, addrA, addrB)
}
