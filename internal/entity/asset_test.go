package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataHash(t *testing.T) {
	metadata := MetadataArgs{
		Name:                 "Duck #1",
		Symbol:               "DUCK",
		Uri:                  "ipfs://duck/1",
		SellerFeeBasisPoints: 1000,
		Creators: []Creator{
			{Address: "creator-a", Share: 60},
			{Address: "creator-b", Share: 40},
		},
	}

	hash := metadata.Hash()
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, metadata.Hash(), "hash is deterministic")
}

func TestMetadataHashIsSensitive(t *testing.T) {
	base := MetadataArgs{
		Name:                 "Duck #1",
		Symbol:               "DUCK",
		Uri:                  "ipfs://duck/1",
		SellerFeeBasisPoints: 1000,
		Creators:             []Creator{{Address: "creator-a", Share: 100}},
	}

	tests := []struct {
		name   string
		mutate func(m MetadataArgs) MetadataArgs
	}{
		{"name", func(m MetadataArgs) MetadataArgs { m.Name = "Duck #2"; return m }},
		{"uri", func(m MetadataArgs) MetadataArgs { m.Uri = "ipfs://duck/2"; return m }},
		{"fee", func(m MetadataArgs) MetadataArgs { m.SellerFeeBasisPoints = 500; return m }},
		{"creator share", func(m MetadataArgs) MetadataArgs {
			m.Creators = []Creator{{Address: "creator-a", Share: 99}}
			return m
		}},
		{"creator address", func(m MetadataArgs) MetadataArgs {
			m.Creators = []Creator{{Address: "creator-b", Share: 100}}
			return m
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base.Hash(), tt.mutate(base).Hash())
		})
	}
}

func TestCanonicalBytesFieldBoundaries(t *testing.T) {
	// Length prefixes keep adjacent fields from bleeding into each other.
	a := MetadataArgs{Name: "ab", Symbol: "c"}
	b := MetadataArgs{Name: "a", Symbol: "bc"}

	assert.NotEqual(t, a.Hash(), b.Hash())
}
