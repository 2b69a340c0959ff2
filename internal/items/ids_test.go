package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveItemID(t *testing.T) {
	assert.Equal(t, "AbCd-RiceCake-1700000000000", DeriveItemID("AbCd", "Rice Cake!", 1700000000000))
	assert.Equal(t, "JuJu-Halohalo2-5", DeriveItemID("JuJu", "Halo-halo #2", 5))
	assert.Equal(t, "JuJu--0", DeriveItemID("JuJu", "¡¿?!", 0))
}

func TestDeriveItemIDVariesOnlyWithTimestamp(t *testing.T) {
	first := DeriveItemID("JuJu", "Turon", 1700000000000)
	second := DeriveItemID("JuJu", "Turon", 1700000000001)

	assert.NotEqual(t, first, second)
	assert.Equal(t, first, DeriveItemID("JuJu", "Turon", 1700000000000))
}
